// Package notes stores per-line annotations on a rendered comparison.
package notes

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

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

// Note is one annotation anchored to a line of a version comparison. The
// anchor names the document, the shown version and the side/line the note
// was written on, so notes survive reloads and re-renders.
type Note struct {
	DocumentID    uuid.UUID `json:"document_id"`
	ArtifactIndex int       `json:"artifact_index"`
	Side          Side      `json:"side"`
	Line          int       `json:"line"`
	Body          string    `json:"body"`
	Label         string    `json:"label"`
	CreatedAt     time.Time `json:"created_at"`
}

// AnchorKey identifies a note's position for map lookups.
func AnchorKey(docID uuid.UUID, artifactIndex int, side Side, line int) string {
	return fmt.Sprintf("%s:%d:%s:%d", docID, artifactIndex, side, line)
}
