// Package artifact models versioned document content and resolves which two
// versions a comparison should render.
package artifact

// Kind distinguishes the two content bodies a version can carry.
type Kind string

const (
	KindCode Kind = "code"
	KindText Kind = "text"
)

// VersionedContent is one immutable snapshot of a document. Index is unique
// within a document and increases monotonically with each saved version.
type VersionedContent struct {
	Index        int    `json:"index"`
	Kind         Kind   `json:"kind"`
	Title        string `json:"title,omitempty"`
	Language     string `json:"language,omitempty"`
	Code         string `json:"code,omitempty"`
	FullMarkdown string `json:"fullMarkdown,omitempty"`
}

// Body returns the text body matching the snapshot's kind.
func (v VersionedContent) Body() string {
	if v.Kind == KindCode {
		return v.Code
	}
	return v.FullMarkdown
}
