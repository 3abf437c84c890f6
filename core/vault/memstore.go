package vault

import (
	"context"
	"strings"
	"sync"

	"github.com/FocuswithJustin/versequote/core/errors"
)

// MemStore is an in-memory Store keyed by vault-relative path. It is safe
// for concurrent use.
type MemStore struct {
	mu   sync.RWMutex
	docs map[string]string
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{docs: make(map[string]string)}
}

// Put adds or replaces the document at p.
func (s *MemStore) Put(p, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[strings.TrimPrefix(p, "/")] = text
}


// ResolveByName implements Store.
func (s *MemStore) ResolveByName(name, searchRoot string) (*Document, bool) {
	s.mu.RLock()
	var matches []string
	for p := range s.docs {
		if MatchesName(p, name) {
			matches = append(matches, p)
		}
	}
	s.mu.RUnlock()

	best := Pick(matches, searchRoot)
	if best == "" {
		return nil, false
	}
	return &Document{Path: best}, true
}

// ReadFullText implements Store.
func (s *MemStore) ReadFullText(ctx context.Context, doc *Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.docs[doc.Path]
	if !ok {
		return "", errors.NewNotFound(doc.Path, "")
	}
	return text, nil
}

// Headings implements Store.
func (s *MemStore) Headings(ctx context.Context, doc *Document) ([]Heading, error) {
	text, err := s.ReadFullText(ctx, doc)
	if err != nil {
		return nil, err
	}
	return ScanHeadings(text), nil
}

// ParentFolderPath implements Store.
func (s *MemStore) ParentFolderPath(doc *Document) string {
	return ParentFolder(doc.Path)
}
