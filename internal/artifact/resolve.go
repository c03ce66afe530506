package artifact

import (
	"errors"
	"fmt"
)

// ChangeType says whether a comparison shows a brand new version or an update
// of an earlier one.
type ChangeType string

const (
	ChangeCreate ChangeType = "create"
	ChangeUpdate ChangeType = "update"
)

// ChangeDescriptor identifies one comparison: which version to show as new
// and, for updates, which prior version to compare against.
type ChangeDescriptor struct {
	ChangeType    ChangeType
	ArtifactIndex int
	PreviousIndex int
}

// Comparison carries the two resolved text blobs for a descriptor.
type Comparison struct {
	OldText  string
	NewText  string
	FileName string
}

// ErrNotFound reports that the descriptor's artifact index is absent from the
// history. The history may still be loading, so callers show a pending state
// and resolve again once inputs change.
var ErrNotFound = errors.New("artifact version not found")

const untitledName = "Untitled"

// Resolve locates the two versions named by desc in history.
//
// A create renders as "everything is new", so OldText stays empty even when
// an earlier version exists. For updates, a missing previous version or a
// kind mismatch degrades to an empty OldText instead of failing.
func Resolve(history []VersionedContent, desc ChangeDescriptor) (Comparison, error) {
	current, ok := findByIndex(history, desc.ArtifactIndex)
	if !ok {
		return Comparison{}, fmt.Errorf("resolve version %d: %w", desc.ArtifactIndex, ErrNotFound)
	}

	name := current.Title
	if name == "" {
		name = untitledName
	}

	oldText := ""
	if desc.ChangeType != ChangeCreate {
		if prev, ok := findByIndex(history, desc.PreviousIndex); ok && prev.Kind == current.Kind {
			oldText = prev.Body()
		}
	}

	return Comparison{OldText: oldText, NewText: current.Body(), FileName: name}, nil
}

// Label is the human-readable name for the comparison desc describes.
func Label(desc ChangeDescriptor) string {
	if desc.ChangeType == ChangeCreate {
		return "Initial version"
	}
	return fmt.Sprintf("Version %d → %d", desc.PreviousIndex, desc.ArtifactIndex)
}

func findByIndex(history []VersionedContent, index int) (VersionedContent, bool) {
	for _, v := range history {
		if v.Index == index {
			return v, true
		}
	}
	return VersionedContent{}, false
}
