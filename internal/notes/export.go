package notes

import (
	"fmt"
	"strings"
)

// ExportPlain renders notes as plain text for the clipboard.
func ExportPlain(notes []Note, title string) string {
	if title == "" {
		title = "Version notes"
	}

	lines := []string{title, ""}
	for i, n := range notes {
		label := n.Label
		if label == "" {
			label = fmt.Sprintf("Version %d", n.ArtifactIndex)
		}
		lines = append(lines, fmt.Sprintf("%d) %s %s:%d", i+1, label, n.Side, n.Line))
		lines = append(lines, fmt.Sprintf("   Note: %s", n.Body))
		lines = append(lines, "")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
