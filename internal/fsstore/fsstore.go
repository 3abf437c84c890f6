// Package fsstore implements vault.Store over a directory of markdown
// chapter documents. Documents are *.md files or xz-compressed *.md.xz
// files; hidden directories such as .obsidian are skipped.
package fsstore

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/FocuswithJustin/versequote/core/errors"
	"github.com/FocuswithJustin/versequote/core/vault"
	"github.com/FocuswithJustin/versequote/internal/cache"
	"github.com/FocuswithJustin/versequote/internal/logging"
	"github.com/FocuswithJustin/versequote/internal/validation"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
)

// Config contains store options.
type Config struct {
	// IndexTTL is how long the list of documents is reused before the
	// vault is walked again.
	IndexTTL time.Duration

	// HeadingCacheSize bounds the number of parsed documents kept.
	HeadingCacheSize int
}

// DefaultConfig returns the default store options.
func DefaultConfig() Config {
	return Config{
		IndexTTL:         30 * time.Second,
		HeadingCacheSize: 256,
	}
}

// Store is a filesystem-backed vault.Store.
type Store struct {
	root     string
	index    *cache.Snapshot[[]string]
	headings *cache.LRU[string, []vault.Heading]
}

// New opens the vault rooted at dir.
func New(dir string, cfg Config) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}
	if !info.IsDir() {
		return nil, errors.NewValidation("vault", dir, "not a directory")
	}
	headings := cache.NewLRU[string, []vault.Heading](cfg.HeadingCacheSize)
	headings.OnEvict(func(key string, _ []vault.Heading) {
		logging.Debug("heading_cache_evicted", "store", "fs", "key", key)
	})
	return &Store{
		root:     dir,
		index:    cache.NewSnapshot[[]string](cfg.IndexTTL),
		headings: headings,
	}, nil
}

// Root returns the vault directory.
func (s *Store) Root() string {
	return s.root
}

// Documents returns the vault-relative paths of every document.
func (s *Store) Documents(ctx context.Context) ([]string, error) {
	return s.index.Load(func() ([]string, error) {
		return s.scan(ctx)
	})
}

// Invalidate forces the next lookup to walk the vault again and drops
// every cached heading list.
func (s *Store) Invalidate() {
	s.index.Invalidate()
	s.headings.Clear()
}

func (s *Store) scan(ctx context.Context) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != s.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isDocument(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan vault %s: %w", s.root, err)
	}
	logging.Debug("vault_scanned", "root", s.root, "documents", len(paths))
	return paths, nil
}

func isDocument(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".md.xz")
}

// ResolveByName implements vault.Store.
func (s *Store) ResolveByName(name, searchRoot string) (*vault.Document, bool) {
	paths, err := s.Documents(context.Background())
	if err != nil {
		logging.Error("document_lookup_failed", "name", name, "error", err.Error())
		return nil, false
	}

	var matches []string
	for _, p := range paths {
		if vault.MatchesName(p, name) {
			matches = append(matches, p)
		}
	}
	best := vault.Pick(matches, searchRoot)
	logging.DocumentLookup(name, searchRoot, best != "", "candidates", len(matches))
	if best == "" {
		return nil, false
	}
	return &vault.Document{Path: best}, true
}

// ReadFullText implements vault.Store. *.md.xz documents are decompressed.
func (s *Store) ReadFullText(ctx context.Context, doc *vault.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	full, err := validation.JoinDocumentPath(s.root, doc.Path)
	if err != nil {
		return "", fmt.Errorf("document %s: %w", doc.Path, err)
	}
	f, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &errors.NotFoundError{Name: doc.Path, Err: err}
		}
		return "", fmt.Errorf("open %s: %w", doc.Path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(doc.Path), ".xz") {
		xzr, err := xz.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("xz reader %s: %w", doc.Path, err)
		}
		r = xzr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", doc.Path, err)
	}
	return string(data), nil
}

// Headings implements vault.Store. Parsed headings are cached by path
// and content hash, so edited documents are parsed again.
func (s *Store) Headings(ctx context.Context, doc *vault.Document) ([]vault.Heading, error) {
	text, err := s.ReadFullText(ctx, doc)
	if err != nil {
		return nil, err
	}

	key := headingKey(doc.Path, text)
	if headings, ok := s.headings.Get(key); ok {
		return headings, nil
	}
	headings := vault.ScanHeadings(text)
	s.headings.Put(key, headings)
	return headings, nil
}

// ParentFolderPath implements vault.Store.
func (s *Store) ParentFolderPath(doc *vault.Document) string {
	return vault.ParentFolder(doc.Path)
}

// CacheStats returns statistics of the heading cache.
func (s *Store) CacheStats() cache.Stats {
	return s.headings.Stats()
}

func headingKey(p, text string) string {
	sum := blake3.Sum256([]byte(text))
	return p + "@" + hex.EncodeToString(sum[:])
}
