// Package diffview computes line-level diffs between two document versions
// and renders them as aligned side-by-side panes.
package diffview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Role classifies one line of a rendered diff.
type Role int

const (
	Unchanged Role = iota
	Inserted
	Deleted
)

// LineChange is one line in the rendered diff. OldLine is set for deleted and
// unchanged lines, NewLine for inserted and unchanged lines; both are 1-based
// and strictly increasing within their stream.
type LineChange struct {
	Role    Role
	Text    string
	OldLine *int
	NewLine *int
}

// Hunk is a contiguous, numbered group of line changes. BuildDiff emits at
// most one hunk covering the whole comparison; there is no context windowing.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []LineChange
}

// DiffResult is the output of BuildDiff: zero or one hunk plus aggregate
// change counts. Additions and Deletions equal the number of inserted and
// deleted LineChanges respectively.
type DiffResult struct {
	Hunks     []Hunk
	Additions int
	Deletions int
}

// ErrDiffComputation reports an unexpected failure inside the diff engine.
// Callers keep their previous render state instead of showing partial output.
var ErrDiffComputation = errors.New("diff computation failed")

// BuildDiff computes a line-level diff between oldText and newText and folds
// it into a single hunk with stable numbering and running change counts.
// Identical inputs yield a result with no hunks and zero counts.
func BuildDiff(oldText, newText string) (result DiffResult, err error) {
	if oldText == newText {
		return DiffResult{}, nil
	}

	defer func() {
		if r := recover(); r != nil {
			result = DiffResult{}
			err = fmt.Errorf("%w: %v", ErrDiffComputation, r)
		}
	}()

	oldLine := 1
	newLine := 1
	var lines []LineChange
	additions := 0
	deletions := 0

	for _, seg := range diffSegments(splitLines(oldText), splitLines(newText)) {
		for _, text := range seg.lines {
			switch seg.role {
			case Inserted:
				lines = append(lines, LineChange{Role: Inserted, Text: text, NewLine: intPtr(newLine)})
				newLine++
				additions++
			case Deleted:
				lines = append(lines, LineChange{Role: Deleted, Text: text, OldLine: intPtr(oldLine)})
				oldLine++
				deletions++
			default:
				lines = append(lines, LineChange{Role: Unchanged, Text: text, OldLine: intPtr(oldLine), NewLine: intPtr(newLine)})
				oldLine++
				newLine++
			}
		}
	}

	if len(lines) == 0 {
		return DiffResult{}, nil
	}

	hunk := Hunk{
		OldStart: 1,
		OldCount: oldLine - 1,
		NewStart: 1,
		NewCount: newLine - 1,
		Lines:    lines,
	}
	return DiffResult{Hunks: []Hunk{hunk}, Additions: additions, Deletions: deletions}, nil
}

// segment is a maximal run of consecutive lines sharing one classification.
type segment struct {
	role  Role
	lines []string
}

// diffSegments runs a Myers diff over the two line slices. Each distinct line
// is mapped to a rune so the character-level engine compares whole lines, the
// same trick diffmatchpatch uses internally for its lines-to-chars mode.
func diffSegments(oldLines, newLines []string) []segment {
	index := make(map[string]rune)
	var table []string
	encode := func(lines []string) []rune {
		out := make([]rune, 0, len(lines))
		for _, line := range lines {
			r, ok := index[line]
			if !ok {
				r = rune(len(table))
				index[line] = r
				table = append(table, line)
			}
			out = append(out, r)
		}
		return out
	}

	oldRunes := encode(oldLines)
	newRunes := encode(newLines)

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMainRunes(oldRunes, newRunes, false)
	diffs = dmp.DiffCleanupMerge(diffs)

	segments := make([]segment, 0, len(diffs))
	for _, d := range diffs {
		lines := make([]string, 0, len(d.Text))
		for _, r := range d.Text {
			lines = append(lines, table[int(r)])
		}
		if len(lines) == 0 {
			continue
		}
		role := Unchanged
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			role = Inserted
		case diffmatchpatch.DiffDelete:
			role = Deleted
		}
		segments = append(segments, segment{role: role, lines: lines})
	}
	return segments
}

// splitLines splits text into terminator-stripped lines. Empty text has no
// lines. A trailing terminator yields a significant empty last line, so a
// trailing-newline-only difference surfaces as one inserted or deleted empty
// line. A text that is exactly one terminator is a single empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	if text == "\n" {
		return []string{""}
	}
	return strings.Split(text, "\n")
}

func intPtr(n int) *int {
	v := n
	return &v
}
