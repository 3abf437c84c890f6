package sqlstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	verrors "github.com/FocuswithJustin/versequote/core/errors"
	"github.com/FocuswithJustin/versequote/core/render"
	"github.com/FocuswithJustin/versequote/core/vault"
	"github.com/FocuswithJustin/versequote/internal/fsstore"
)

const genesis1 = "# Gen 1\n###### 1\nIn the beginning\n###### 2\nNow the earth\n"

func newVault(t *testing.T) *fsstore.Store {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"Bible/NIV/Gen 1.md": genesis1,
		"Bible/ESV/Gen 1.md": genesis1,
		"OBSK/Exo-02.md":     "# Exo 2\n###### 1\nNow a man\n",
	}
	for rel, text := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	store, err := fsstore.New(root, fsstore.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "vault.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDriver(t *testing.T) {
	switch DriverType() {
	case "purego":
		if DriverName() != "sqlite" {
			t.Errorf("DriverName() = %q, want sqlite", DriverName())
		}
	case "cgo":
		if DriverName() != "sqlite3" {
			t.Errorf("DriverName() = %q, want sqlite3", DriverName())
		}
	default:
		t.Errorf("DriverType() = %q", DriverType())
	}
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	n, err := store.Import(ctx, newVault(t))
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if n != 3 {
		t.Errorf("Import() = %d, want 3", n)
	}

	// A second import replaces rather than duplicates.
	if _, err := store.Import(ctx, newVault(t)); err != nil {
		t.Fatalf("second Import() error: %v", err)
	}
	if count, err := store.Count(ctx); err != nil || count != 3 {
		t.Errorf("Count() = (%d, %v), want 3", count, err)
	}
}

func TestResolveAndRead(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	if _, err := store.Import(ctx, newVault(t)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		root   string
		want   string
		wantOK bool
	}{
		{"Gen 1", "Bible/NIV/", "Bible/NIV/Gen 1.md", true},
		{"GEN 1", "Bible/ESV/", "Bible/ESV/Gen 1.md", true},
		{"NIV/Gen 1", "", "Bible/NIV/Gen 1.md", true},
		{"Exo-02", "", "OBSK/Exo-02.md", true},
		{"Gen 2", "", "", false},
	}
	for _, tt := range tests {
		doc, ok := store.ResolveByName(tt.name, tt.root)
		if ok != tt.wantOK || (ok && doc.Path != tt.want) {
			t.Errorf("ResolveByName(%q, %q) = (%v, %v), want %q", tt.name, tt.root, doc, ok, tt.want)
		}
	}

	doc := &vault.Document{Path: "Bible/NIV/Gen 1.md"}
	text, err := store.ReadFullText(ctx, doc)
	if err != nil || text != genesis1 {
		t.Errorf("ReadFullText() = (%q, %v)", text, err)
	}

	headings, err := store.Headings(ctx, doc)
	if err != nil || len(headings) != 3 {
		t.Fatalf("Headings() = (%+v, %v)", headings, err)
	}
	if _, err := store.Headings(ctx, doc); err != nil {
		t.Fatal(err)
	}
	if stats := store.CacheStats(); stats.Hits != 1 {
		t.Errorf("CacheStats() = %+v, want one hit", stats)
	}
	store.Invalidate()
	if stats := store.CacheStats(); stats.Size != 0 {
		t.Errorf("CacheStats() after Invalidate = %+v, want empty cache", stats)
	}

	if got := store.ParentFolderPath(doc); got != "Bible/NIV" {
		t.Errorf("ParentFolderPath() = %q", got)
	}

	_, err = store.ReadFullText(ctx, &vault.Document{Path: "missing.md"})
	if !errors.Is(err, verrors.ErrDocumentNotFound) {
		t.Errorf("ReadFullText(missing) error = %v, want ErrDocumentNotFound", err)
	}
}

func TestRenderFromDatabase(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	if _, err := store.Import(ctx, newVault(t)); err != nil {
		t.Fatal(err)
	}

	got, err := render.New(store, nil).Quote(ctx, "Exo 2,1", render.DefaultConfig(), "", false, false)
	if err != nil {
		t.Fatalf("Quote() error: %v", err)
	}
	if want := "[[Exo-02#1|Exo 2.1]] Now a man "; got != want {
		t.Errorf("Quote() = %q, want %q", got, want)
	}
}
