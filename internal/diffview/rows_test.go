package diffview

import "testing"

func TestRowsFromResultPairsDeleteAndAddRuns(t *testing.T) {
	result, err := BuildDiff("keep\noldA\noldB\ntail", "keep\nnewA\nnewB\nnewC\ntail")
	if err != nil {
		t.Fatalf("BuildDiff() error = %v", err)
	}

	rows := RowsFromResult(result)
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}

	if got, want := rows[0].Kind, RowContext; got != want {
		t.Fatalf("row 0 kind = %v, want %v", got, want)
	}
	if got, want := rows[1].Kind, RowChange; got != want {
		t.Fatalf("row 1 kind = %v, want %v", got, want)
	}
	if got, want := rows[2].Kind, RowChange; got != want {
		t.Fatalf("row 2 kind = %v, want %v", got, want)
	}
	if got, want := rows[3].Kind, RowAdd; got != want {
		t.Fatalf("row 3 kind = %v, want %v", got, want)
	}
	if got, want := rows[4].Kind, RowContext; got != want {
		t.Fatalf("row 4 kind = %v, want %v", got, want)
	}

	assertLineNumber(t, rows[0].OldLine, 1)
	assertLineNumber(t, rows[0].NewLine, 1)
	assertLineNumber(t, rows[1].OldLine, 2)
	assertLineNumber(t, rows[1].NewLine, 2)
	if rows[1].OldText != "oldA" || rows[1].NewText != "newA" {
		t.Fatalf("row 1 texts = %q/%q", rows[1].OldText, rows[1].NewText)
	}
	if rows[3].OldLine != nil {
		t.Fatalf("add row old line = %d, want nil", *rows[3].OldLine)
	}
	assertLineNumber(t, rows[3].NewLine, 4)
	assertLineNumber(t, rows[4].OldLine, 4)
	assertLineNumber(t, rows[4].NewLine, 5)
}

func TestRowsFromResultAllInserted(t *testing.T) {
	result, err := BuildDiff("", "line1\nline2")
	if err != nil {
		t.Fatalf("BuildDiff() error = %v", err)
	}

	rows := RowsFromResult(result)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row.Kind != RowAdd {
			t.Fatalf("row %d kind = %v, want RowAdd", i, row.Kind)
		}
		if row.OldLine != nil {
			t.Fatalf("row %d old line = %d, want nil", i, *row.OldLine)
		}
	}
	assertLineNumber(t, rows[0].NewLine, 1)
	assertLineNumber(t, rows[1].NewLine, 2)
}

func TestRowsFromResultEmptyResult(t *testing.T) {
	rows := RowsFromResult(DiffResult{})
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}
