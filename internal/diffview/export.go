package diffview

import (
	"strings"

	sgdiff "github.com/sourcegraph/go-diff/diff"
)

// UnifiedDiff prints result as a standard unified diff for fileName. An empty
// result (no changes) prints as an empty string.
func UnifiedDiff(fileName string, result DiffResult) (string, error) {
	if len(result.Hunks) == 0 {
		return "", nil
	}

	fd := &sgdiff.FileDiff{
		OrigName: "a/" + fileName,
		NewName:  "b/" + fileName,
	}
	for _, h := range result.Hunks {
		var body strings.Builder
		for _, line := range h.Lines {
			switch line.Role {
			case Inserted:
				body.WriteByte('+')
			case Deleted:
				body.WriteByte('-')
			default:
				body.WriteByte(' ')
			}
			body.WriteString(line.Text)
			body.WriteByte('\n')
		}
		fd.Hunks = append(fd.Hunks, &sgdiff.Hunk{
			OrigStartLine: int32(h.OldStart),
			OrigLines:     int32(h.OldCount),
			NewStartLine:  int32(h.NewStart),
			NewLines:      int32(h.NewCount),
			Body:          []byte(body.String()),
		})
	}

	out, err := sgdiff.PrintFileDiff(fd)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
