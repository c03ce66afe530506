package diffview

type Side int

const (
	SideOld Side = iota
	SideNew
)

func (s Side) String() string {
	if s == SideOld {
		return "old"
	}
	return "new"
}

type RowKind int

const (
	RowContext RowKind = iota
	RowDelete
	RowAdd
	RowChange
)

// DiffRow is one visual row of the split view. A change row carries a paired
// deleted line on the old side and an inserted line on the new side.
type DiffRow struct {
	Kind    RowKind
	OldLine *int
	NewLine *int
	OldText string
	NewText string
}

// RowsFromResult projects hunk lines into side-by-side rows. Adjacent
// deleted/inserted runs are paired index-by-index into change rows; leftover
// lines stay pure deletes or adds.
func RowsFromResult(result DiffResult) []DiffRow {
	var rows []DiffRow
	for _, h := range result.Hunks {
		lines := h.Lines
		for i := 0; i < len(lines); {
			if lines[i].Role == Unchanged {
				rows = append(rows, DiffRow{
					Kind:    RowContext,
					OldLine: lines[i].OldLine,
					NewLine: lines[i].NewLine,
					OldText: lines[i].Text,
					NewText: lines[i].Text,
				})
				i++
				continue
			}

			start := i
			for i < len(lines) && lines[i].Role == Deleted {
				i++
			}
			delRun := lines[start:i]

			addStart := i
			for i < len(lines) && lines[i].Role == Inserted {
				i++
			}
			addRun := lines[addStart:i]

			rows = append(rows, pairEditRuns(delRun, addRun)...)
		}
	}
	return rows
}

func pairEditRuns(dels, adds []LineChange) []DiffRow {
	count := len(dels)
	if len(adds) > count {
		count = len(adds)
	}
	out := make([]DiffRow, 0, count)
	for i := 0; i < count; i++ {
		var row DiffRow

		hasDel := i < len(dels)
		hasAdd := i < len(adds)

		if hasDel {
			row.OldLine = dels[i].OldLine
			row.OldText = dels[i].Text
		}
		if hasAdd {
			row.NewLine = adds[i].NewLine
			row.NewText = adds[i].Text
		}

		switch {
		case hasDel && hasAdd:
			row.Kind = RowChange
		case hasDel:
			row.Kind = RowDelete
		default:
			row.Kind = RowAdd
		}

		out = append(out, row)
	}
	return out
}
