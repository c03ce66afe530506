package diffview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// RenderSplit renders rows into aligned old/new pane lines. hasNote marks
// annotated lines in the gutter. highlight, when non-nil, colours line text;
// gutters and numbers stay plain so alignment survives styling.
func RenderSplit(
	rows []DiffRow,
	oldWidth int,
	newWidth int,
	cursor int,
	hasNote func(line int, side Side) bool,
	highlight func(text string) string,
) ([]string, []string) {
	if oldWidth <= 0 {
		oldWidth = 1
	}
	if newWidth <= 0 {
		newWidth = 1
	}

	maxOld := 0
	maxNew := 0
	for _, row := range rows {
		if row.OldLine != nil && *row.OldLine > maxOld {
			maxOld = *row.OldLine
		}
		if row.NewLine != nil && *row.NewLine > maxNew {
			maxNew = *row.NewLine
		}
	}
	oldNumW := maxInt(3, digits(maxOld))
	newNumW := maxInt(3, digits(maxNew))

	oldLines := make([]string, 0, len(rows))
	newLines := make([]string, 0, len(rows))
	for i, row := range rows {
		oldLines = append(oldLines, renderRowForSide(row, SideOld, oldWidth, oldNumW, i == cursor, hasNote, highlight))
		newLines = append(newLines, renderRowForSide(row, SideNew, newWidth, newNumW, i == cursor, hasNote, highlight))
	}
	return oldLines, newLines
}

func renderRowForSide(
	row DiffRow,
	side Side,
	width, numW int,
	isCursor bool,
	hasNote func(line int, side Side) bool,
	highlight func(text string) string,
) string {
	cursorMark := " "
	if isCursor {
		cursorMark = ">"
	}

	noteMark := " "
	if hasNoteOnSide(row, side, hasNote) {
		noteMark = "*"
	}

	prefix := cursorMark + noteMark + " "
	lineWidth := maxInt(1, width-len(prefix))

	lineNo, text, marker, ok := sideContent(row, side)
	if !ok {
		return prefix + strings.Repeat(" ", lineWidth)
	}

	num := ""
	if lineNo != nil {
		num = fmt.Sprintf("%d", *lineNo)
	}
	if highlight != nil {
		text = highlight(text)
	}
	base := fmt.Sprintf("%c %*s %s", marker, numW, num, text)
	return prefix + padRight(ansi.Truncate(base, lineWidth, ""), lineWidth)
}

func sideContent(row DiffRow, side Side) (*int, string, rune, bool) {
	switch side {
	case SideOld:
		if row.OldLine == nil {
			return nil, "", ' ', false
		}
		marker := ' '
		if row.Kind == RowDelete || row.Kind == RowChange {
			marker = '-'
		}
		return row.OldLine, row.OldText, marker, true

	case SideNew:
		if row.NewLine == nil {
			return nil, "", ' ', false
		}
		marker := ' '
		if row.Kind == RowAdd || row.Kind == RowChange {
			marker = '+'
		}
		return row.NewLine, row.NewText, marker, true
	}

	return nil, "", ' ', false
}

func hasNoteOnSide(row DiffRow, side Side, hasNote func(line int, side Side) bool) bool {
	if hasNote == nil {
		return false
	}

	if side == SideOld && row.OldLine != nil {
		return hasNote(*row.OldLine, SideOld)
	}
	if side == SideNew && row.NewLine != nil {
		return hasNote(*row.NewLine, SideNew)
	}
	return false
}

func padRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func digits(n int) int {
	if n <= 0 {
		return 1
	}
	d := 0
	for n > 0 {
		d++
		n /= 10
	}
	return d
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
