package diffview

import (
	"strings"
	"testing"
)

func TestRenderSplitMarkersAndNumbers(t *testing.T) {
	rows := []DiffRow{
		{Kind: RowContext, OldLine: intPtr(1), NewLine: intPtr(1), OldText: "keep", NewText: "keep"},
		{Kind: RowChange, OldLine: intPtr(2), NewLine: intPtr(2), OldText: "before", NewText: "after"},
		{Kind: RowAdd, NewLine: intPtr(3), NewText: "extra"},
	}

	oldLines, newLines := RenderSplit(rows, 40, 40, -1, nil, nil)
	if len(oldLines) != 3 || len(newLines) != 3 {
		t.Fatalf("rendered %d/%d lines, want 3/3", len(oldLines), len(newLines))
	}

	if !strings.Contains(oldLines[1], "- ") || !strings.Contains(oldLines[1], "before") {
		t.Fatalf("old change line = %q, want '-' marker and text", oldLines[1])
	}
	if !strings.Contains(newLines[1], "+ ") || !strings.Contains(newLines[1], "after") {
		t.Fatalf("new change line = %q, want '+' marker and text", newLines[1])
	}
	if !strings.Contains(newLines[2], "3 extra") {
		t.Fatalf("new add line = %q, want number 3 and text", newLines[2])
	}
	// The add row has no old side; it renders as a blank filler line.
	if strings.TrimSpace(oldLines[2]) != "" {
		t.Fatalf("old side of add row = %q, want blank", oldLines[2])
	}
}

func TestRenderSplitCursorMark(t *testing.T) {
	rows := []DiffRow{
		{Kind: RowContext, OldLine: intPtr(1), NewLine: intPtr(1), OldText: "a", NewText: "a"},
		{Kind: RowContext, OldLine: intPtr(2), NewLine: intPtr(2), OldText: "b", NewText: "b"},
	}

	oldLines, _ := RenderSplit(rows, 30, 30, 1, nil, nil)
	if !strings.HasPrefix(oldLines[1], ">") {
		t.Fatalf("cursor row = %q, want '>' prefix", oldLines[1])
	}
	if strings.HasPrefix(oldLines[0], ">") {
		t.Fatalf("non-cursor row = %q, must not carry cursor mark", oldLines[0])
	}
}

func TestRenderSplitNoteMark(t *testing.T) {
	rows := []DiffRow{
		{Kind: RowContext, OldLine: intPtr(1), NewLine: intPtr(1), OldText: "a", NewText: "a"},
	}

	hasNote := func(line int, side Side) bool {
		return side == SideNew && line == 1
	}
	oldLines, newLines := RenderSplit(rows, 30, 30, -1, hasNote, nil)
	if newLines[0][1] != '*' {
		t.Fatalf("new line gutter = %q, want note mark", newLines[0])
	}
	if oldLines[0][1] == '*' {
		t.Fatalf("old line gutter = %q, note mark on wrong side", oldLines[0])
	}
}

func TestRenderSplitPadsAndTruncatesToWidth(t *testing.T) {
	rows := []DiffRow{
		{Kind: RowContext, OldLine: intPtr(1), NewLine: intPtr(1), OldText: "short", NewText: strings.Repeat("x", 100)},
	}

	oldLines, newLines := RenderSplit(rows, 20, 20, -1, nil, nil)
	if got := len([]rune(oldLines[0])); got != 20 {
		t.Fatalf("old line width = %d, want 20", got)
	}
	if got := len([]rune(newLines[0])); got != 20 {
		t.Fatalf("new line width = %d, want 20", got)
	}
}

func TestRenderSplitHighlightKeepsAlignment(t *testing.T) {
	rows := []DiffRow{
		{Kind: RowContext, OldLine: intPtr(1), NewLine: intPtr(1), OldText: "x := 1", NewText: "x := 1"},
	}

	fakeHighlight := func(text string) string {
		return "\x1b[38;5;81m" + text + "\x1b[0m"
	}
	_, newLines := RenderSplit(rows, 30, 30, -1, nil, fakeHighlight)
	// Styled output must still occupy exactly the pane width in cells.
	if got := visibleWidth(newLines[0]); got != 30 {
		t.Fatalf("highlighted line width = %d, want 30", got)
	}
}

func visibleWidth(s string) int {
	width := 0
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			width++
		}
	}
	return width
}
