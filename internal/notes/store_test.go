package notes

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "notes.json"))

	docID := uuid.New()
	in := []Note{
		{DocumentID: docID, ArtifactIndex: 2, Side: SideNew, Line: 14, Body: "why this change?", Label: "Version 1 → 2", CreatedAt: time.Now().UTC()},
		{DocumentID: docID, ArtifactIndex: 2, Side: SideOld, Line: 3, Body: "was clearer before", Label: "Version 1 → 2", CreatedAt: time.Now().UTC()},
	}
	if err := store.Save(in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	out, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Load() returned %d notes, want 2", len(out))
	}
	if out[0].Body != "why this change?" || out[0].Line != 14 {
		t.Fatalf("first note = %+v", out[0])
	}
	if out[1].Side != SideOld {
		t.Fatalf("second note side = %v, want SideOld", out[1].Side)
	}
}

func TestStoreLoadMissingFileIsEmpty(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "absent", "notes.json"))
	out, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("Load() returned %d notes, want 0", len(out))
	}
}

func TestNewStoreUsesXDGDataHome(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_DATA_HOME", xdg)

	store, err := NewStore()
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	want := filepath.Join(xdg, "verdiff", "notes.json")
	if store.path != want {
		t.Fatalf("store path = %q, want %q", store.path, want)
	}
}

func TestAnchorKeyDistinguishesSides(t *testing.T) {
	docID := uuid.New()
	oldKey := AnchorKey(docID, 2, SideOld, 7)
	newKey := AnchorKey(docID, 2, SideNew, 7)
	if oldKey == newKey {
		t.Fatalf("anchor keys collide: %q", oldKey)
	}
}

func TestExportPlain(t *testing.T) {
	docID := uuid.New()
	out := ExportPlain([]Note{
		{DocumentID: docID, ArtifactIndex: 3, Side: SideNew, Line: 5, Body: "looks good", Label: "Version 2 → 3"},
	}, "")

	if !strings.HasPrefix(out, "Version notes") {
		t.Fatalf("export missing default title:\n%s", out)
	}
	if !strings.Contains(out, "Version 2 → 3 new:5") {
		t.Fatalf("export missing anchor line:\n%s", out)
	}
	if !strings.Contains(out, "Note: looks good") {
		t.Fatalf("export missing body:\n%s", out)
	}
}
