// Package sqlstore implements vault.Store over a SQLite database, so a
// vault can be imported once and served without walking the filesystem.
//
// Build modes:
//   - Default: pure Go modernc.org/sqlite
//   - CGO mode (CGO_ENABLED=1 -tags cgo_sqlite): mattn/go-sqlite3
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/FocuswithJustin/versequote/core/errors"
	"github.com/FocuswithJustin/versequote/core/vault"
	"github.com/FocuswithJustin/versequote/internal/cache"
	"github.com/FocuswithJustin/versequote/internal/logging"
	"github.com/zeebo/blake3"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	path   TEXT PRIMARY KEY,
	name   TEXT NOT NULL,
	folder TEXT NOT NULL,
	body   TEXT NOT NULL,
	hash   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS documents_name ON documents(name);
`

// DriverName returns the database/sql driver the store uses.
func DriverName() string {
	return driverName
}

// DriverType returns "purego" for modernc.org/sqlite or "cgo" for
// mattn/go-sqlite3.
func DriverType() string {
	return driverType
}

// Store is a SQLite-backed vault.Store.
type Store struct {
	db       *sql.DB
	headings *cache.LRU[string, []vault.Heading]
}

// Open opens or creates the database at dsn and ensures the schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	headings := cache.NewLRU[string, []vault.Heading](256)
	headings.OnEvict(func(key string, _ []vault.Heading) {
		logging.Debug("heading_cache_evicted", "store", "sqlite", "key", key)
	})
	return &Store{db: db, headings: headings}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Source is a vault that can be imported.
type Source interface {
	Documents(ctx context.Context) ([]string, error)
	ReadFullText(ctx context.Context, doc *vault.Document) (string, error)
}

// Import copies every document of src into the database, replacing
// documents with the same path. It returns the number of documents.
func (s *Store) Import(ctx context.Context, src Source) (int, error) {
	paths, err := src.Documents(ctx)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (path, name, folder, body, hash) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			name = excluded.name, folder = excluded.folder,
			body = excluded.body, hash = excluded.hash`)
	if err != nil {
		return 0, fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	for _, p := range paths {
		text, err := src.ReadFullText(ctx, &vault.Document{Path: p})
		if err != nil {
			return 0, err
		}
		if _, err := stmt.ExecContext(ctx, p, nameKey(p), vault.ParentFolder(p), text, contentHash(text)); err != nil {
			return 0, fmt.Errorf("import %s: %w", p, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	logging.Info("vault_imported", "documents", len(paths), "driver", driverType)
	return len(paths), nil
}

// ResolveByName implements vault.Store.
func (s *Store) ResolveByName(name, searchRoot string) (*vault.Document, bool) {
	key := name
	if i := strings.LastIndex(strings.ReplaceAll(name, "\\", "/"), "/"); i >= 0 {
		key = name[i+1:]
	}

	rows, err := s.db.Query(`SELECT path FROM documents WHERE name = ?`, strings.ToLower(key))
	if err != nil {
		logging.Error("document_lookup_failed", "name", name, "error", err.Error())
		return nil, false
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			logging.Error("document_lookup_failed", "name", name, "error", err.Error())
			return nil, false
		}
		if vault.MatchesName(p, name) {
			matches = append(matches, p)
		}
	}
	if err := rows.Err(); err != nil {
		logging.Error("document_lookup_failed", "name", name, "error", err.Error())
		return nil, false
	}

	best := vault.Pick(matches, searchRoot)
	logging.DocumentLookup(name, searchRoot, best != "", "candidates", len(matches))
	if best == "" {
		return nil, false
	}
	return &vault.Document{Path: best}, true
}

// ReadFullText implements vault.Store.
func (s *Store) ReadFullText(ctx context.Context, doc *vault.Document) (string, error) {
	text, _, err := s.load(ctx, doc)
	return text, err
}

// Headings implements vault.Store.
func (s *Store) Headings(ctx context.Context, doc *vault.Document) ([]vault.Heading, error) {
	text, hash, err := s.load(ctx, doc)
	if err != nil {
		return nil, err
	}

	key := doc.Path + "@" + hash
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

// Count returns the number of stored documents.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return n, nil
}

// Invalidate drops every cached heading list.
func (s *Store) Invalidate() {
	s.headings.Clear()
}

// CacheStats returns statistics of the heading cache.
func (s *Store) CacheStats() cache.Stats {
	return s.headings.Stats()
}

func (s *Store) load(ctx context.Context, doc *vault.Document) (string, string, error) {
	var text, hash string
	err := s.db.QueryRowContext(ctx, `SELECT body, hash FROM documents WHERE path = ?`, doc.Path).Scan(&text, &hash)
	if err == sql.ErrNoRows {
		return "", "", &errors.NotFoundError{Name: doc.Path, Err: err}
	}
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", doc.Path, err)
	}
	return text, hash, nil
}

// nameKey is the indexed lookup name of a document: its lowercased base name.
func nameKey(p string) string {
	return strings.ToLower(vault.Basename(p))
}

func contentHash(text string) string {
	sum := blake3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
