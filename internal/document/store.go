// Package document supplies version histories to the panel.
package document

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"

	"verdiff/internal/artifact"
)

// Document is one document with its full content history, ordered by version
// index after loading.
type Document struct {
	ID       uuid.UUID                   `json:"id"`
	Title    string                      `json:"title"`
	Contents []artifact.VersionedContent `json:"contents"`
}

// Service loads document histories. The history may still be growing while
// the panel is open, so callers reload rather than treating a missing version
// as fatal.
type Service interface {
	LoadDocument(ctx context.Context, path string) (Document, error)
}

type fileService struct{}

func NewFileService() Service {
	return fileService{}
}

func (fileService) LoadDocument(_ context.Context, path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return Document{}, fmt.Errorf("parse document %s: %w", path, err)
	}

	seen := make(map[int]bool, len(doc.Contents))
	for _, c := range doc.Contents {
		if seen[c.Index] {
			return Document{}, fmt.Errorf("document %s: duplicate content index %d", path, c.Index)
		}
		seen[c.Index] = true
	}

	sort.SliceStable(doc.Contents, func(i, j int) bool {
		return doc.Contents[i].Index < doc.Contents[j].Index
	})
	return doc, nil
}
