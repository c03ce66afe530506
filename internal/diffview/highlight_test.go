package diffview

import "testing"

func TestNewHighlighterUnknownLanguageIsNil(t *testing.T) {
	h := NewHighlighter("definitely-not-a-language", "", "monokai")
	if h != nil {
		t.Fatalf("expected nil highlighter for unknown language")
	}
	// A nil highlighter must pass text through untouched.
	if got := h.Line("plain text"); got != "plain text" {
		t.Fatalf("nil Highlighter.Line() = %q", got)
	}
}

func TestNewHighlighterByLanguage(t *testing.T) {
	h := NewHighlighter("go", "", "monokai")
	if h == nil {
		t.Fatalf("expected highlighter for go")
	}
	if got := h.Line(""); got != "" {
		t.Fatalf("Line(\"\") = %q, want empty", got)
	}
}

func TestNewHighlighterByFileName(t *testing.T) {
	h := NewHighlighter("", "main.go", "monokai")
	if h == nil {
		t.Fatalf("expected highlighter matched by file name")
	}
}
