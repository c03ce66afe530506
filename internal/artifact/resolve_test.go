package artifact

import (
	"errors"
	"testing"
)

func sampleHistory() []VersionedContent {
	return []VersionedContent{
		{Index: 1, Kind: KindCode, Title: "main.go", Code: "package main\n"},
		{Index: 2, Kind: KindCode, Title: "main.go", Code: "package main\n\nfunc main() {}\n"},
		{Index: 3, Kind: KindText, Title: "notes.md", FullMarkdown: "# Notes\n"},
	}
}

func TestResolveUpdateUsesPreviousBody(t *testing.T) {
	comp, err := Resolve(sampleHistory(), ChangeDescriptor{
		ChangeType:    ChangeUpdate,
		ArtifactIndex: 2,
		PreviousIndex: 1,
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if comp.OldText != "package main\n" {
		t.Fatalf("OldText = %q, want previous code body", comp.OldText)
	}
	if comp.NewText != "package main\n\nfunc main() {}\n" {
		t.Fatalf("NewText = %q, want current code body", comp.NewText)
	}
	if comp.FileName != "main.go" {
		t.Fatalf("FileName = %q, want main.go", comp.FileName)
	}
}

func TestResolveCreateForcesEmptyOldText(t *testing.T) {
	// PreviousIndex points at a real version; create must ignore it.
	comp, err := Resolve(sampleHistory(), ChangeDescriptor{
		ChangeType:    ChangeCreate,
		ArtifactIndex: 2,
		PreviousIndex: 1,
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if comp.OldText != "" {
		t.Fatalf("OldText = %q, want empty for create", comp.OldText)
	}
}

func TestResolveMissingArtifactIndexIsNotFound(t *testing.T) {
	_, err := Resolve(sampleHistory(), ChangeDescriptor{
		ChangeType:    ChangeUpdate,
		ArtifactIndex: 99,
		PreviousIndex: 1,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Resolve() error = %v, want ErrNotFound", err)
	}
}

func TestResolveMissingPreviousDegradesToEmptyOldText(t *testing.T) {
	comp, err := Resolve(sampleHistory(), ChangeDescriptor{
		ChangeType:    ChangeUpdate,
		ArtifactIndex: 2,
		PreviousIndex: 42,
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if comp.OldText != "" {
		t.Fatalf("OldText = %q, want empty when previous version is missing", comp.OldText)
	}
}

func TestResolveKindMismatchDegradesToEmptyOldText(t *testing.T) {
	comp, err := Resolve(sampleHistory(), ChangeDescriptor{
		ChangeType:    ChangeUpdate,
		ArtifactIndex: 3,
		PreviousIndex: 2,
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if comp.OldText != "" {
		t.Fatalf("OldText = %q, want empty on kind mismatch", comp.OldText)
	}
	if comp.NewText != "# Notes\n" {
		t.Fatalf("NewText = %q, want markdown body", comp.NewText)
	}
}

func TestResolveDefaultsFileNameToUntitled(t *testing.T) {
	history := []VersionedContent{{Index: 1, Kind: KindText, FullMarkdown: "hello"}}
	comp, err := Resolve(history, ChangeDescriptor{ChangeType: ChangeCreate, ArtifactIndex: 1})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if comp.FileName != "Untitled" {
		t.Fatalf("FileName = %q, want Untitled", comp.FileName)
	}
}

func TestLabel(t *testing.T) {
	if got := Label(ChangeDescriptor{ChangeType: ChangeCreate, ArtifactIndex: 1}); got != "Initial version" {
		t.Fatalf("Label(create) = %q", got)
	}
	got := Label(ChangeDescriptor{ChangeType: ChangeUpdate, ArtifactIndex: 3, PreviousIndex: 2})
	if got != "Version 2 → 3" {
		t.Fatalf("Label(update) = %q", got)
	}
}
