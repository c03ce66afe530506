package diffview

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter colours single lines of code for terminal output. A nil
// Highlighter passes text through unchanged, so callers never need to branch
// on whether a lexer was found.
type Highlighter struct {
	lexer chroma.Lexer
	style *chroma.Style
}

// NewHighlighter picks a lexer by language name first, then by file name.
// It returns nil when neither matches (markdown/text bodies stay plain).
func NewHighlighter(language, fileName, styleName string) *Highlighter {
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	if lexer == nil && fileName != "" {
		lexer = lexers.Match(fileName)
	}
	if lexer == nil {
		return nil
	}
	return &Highlighter{
		lexer: chroma.Coalesce(lexer),
		style: styles.Get(styleName),
	}
}

// Line returns text with ANSI colouring, or the input untouched on any
// tokenisation or formatting failure.
func (h *Highlighter) Line(text string) string {
	if h == nil || text == "" {
		return text
	}
	it, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}
	var sb strings.Builder
	if err := formatters.TTY256.Format(&sb, h.style, it); err != nil {
		return text
	}
	return strings.TrimRight(sb.String(), "\n")
}
