package diffview

import (
	"strings"
	"testing"
)

func TestUnifiedDiffPrintsHunk(t *testing.T) {
	result, err := BuildDiff("a\nb\nc", "a\nB\nc")
	if err != nil {
		t.Fatalf("BuildDiff() error = %v", err)
	}

	out, err := UnifiedDiff("sample.txt", result)
	if err != nil {
		t.Fatalf("UnifiedDiff() error = %v", err)
	}

	for _, want := range []string{
		"--- a/sample.txt",
		"+++ b/sample.txt",
		"@@ -1,3 +1,3 @@",
		"-b",
		"+B",
		" a",
		" c",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("unified diff missing %q:\n%s", want, out)
		}
	}
}

func TestUnifiedDiffEmptyResult(t *testing.T) {
	out, err := UnifiedDiff("sample.txt", DiffResult{})
	if err != nil {
		t.Fatalf("UnifiedDiff() error = %v", err)
	}
	if out != "" {
		t.Fatalf("UnifiedDiff(empty) = %q, want empty string", out)
	}
}

func TestUnifiedDiffPureInsert(t *testing.T) {
	result, err := BuildDiff("", "one\ntwo")
	if err != nil {
		t.Fatalf("BuildDiff() error = %v", err)
	}

	out, err := UnifiedDiff("new.txt", result)
	if err != nil {
		t.Fatalf("UnifiedDiff() error = %v", err)
	}
	if !strings.Contains(out, "+one") || !strings.Contains(out, "+two") {
		t.Fatalf("unified diff missing inserted lines:\n%s", out)
	}
}
