package fsstore

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	verrors "github.com/FocuswithJustin/versequote/core/errors"
	"github.com/FocuswithJustin/versequote/core/vault"
	"github.com/FocuswithJustin/versequote/internal/validation"
	"github.com/ulikunitz/xz"
)

const chapter = "# Gen 1\n###### 1\nIn the beginning\n###### 2\nNow the earth\n"

func writeFile(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func compress(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(text)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newVault(t *testing.T) *Store {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "Bible/NIV/Genesis/Gen 1.md", []byte(chapter))
	writeFile(t, root, "Bible/ESV/Gen 1.md", []byte(chapter))
	writeFile(t, root, "OBSK/Exo-02.md.xz", compress(t, "# Exo 2\n###### 1\nNow a man\n"))
	writeFile(t, root, ".obsidian/Gen 1.md", []byte("hidden"))
	writeFile(t, root, "Bible/notes.txt", []byte("not a document"))

	store, err := New(root, DefaultConfig())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return store
}

func TestNewRejectsFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "file.md", []byte("x"))

	if _, err := New(filepath.Join(root, "file.md"), DefaultConfig()); !errors.Is(err, verrors.ErrInvalidInput) {
		t.Errorf("New(file) error = %v, want ErrInvalidInput", err)
	}
	if _, err := New(filepath.Join(root, "missing"), DefaultConfig()); err == nil {
		t.Error("New(missing) expected error")
	}
}

func TestDocuments(t *testing.T) {
	store := newVault(t)
	paths, err := store.Documents(context.Background())
	if err != nil {
		t.Fatalf("Documents() error: %v", err)
	}

	want := map[string]bool{
		"Bible/NIV/Genesis/Gen 1.md": true,
		"Bible/ESV/Gen 1.md":         true,
		"OBSK/Exo-02.md.xz":          true,
	}
	if len(paths) != len(want) {
		t.Fatalf("Documents() = %v", paths)
	}
	for _, p := range paths {
		if !want[p] {
			t.Errorf("unexpected document %q", p)
		}
	}
}

func TestResolveByName(t *testing.T) {
	store := newVault(t)

	tests := []struct {
		name   string
		root   string
		want   string
		wantOK bool
	}{
		{"Gen 1", "", "Bible/ESV/Gen 1.md", true},
		{"Gen 1", "Bible/NIV/", "Bible/NIV/Genesis/Gen 1.md", true},
		{"gen 1", "Bible/ESV/", "Bible/ESV/Gen 1.md", true},
		{"Genesis/Gen 1", "", "Bible/NIV/Genesis/Gen 1.md", true},
		{"Exo-02", "", "OBSK/Exo-02.md.xz", true},
		{"Gen 2", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name+"@"+tt.root, func(t *testing.T) {
			doc, ok := store.ResolveByName(tt.name, tt.root)
			if ok != tt.wantOK {
				t.Fatalf("ResolveByName() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && doc.Path != tt.want {
				t.Errorf("ResolveByName() = %q, want %q", doc.Path, tt.want)
			}
		})
	}
}

func TestReadFullTextCompressed(t *testing.T) {
	store := newVault(t)
	text, err := store.ReadFullText(context.Background(), &vault.Document{Path: "OBSK/Exo-02.md.xz"})
	if err != nil {
		t.Fatalf("ReadFullText() error: %v", err)
	}
	if text != "# Exo 2\n###### 1\nNow a man\n" {
		t.Errorf("ReadFullText() = %q", text)
	}
}

func TestReadFullTextMissing(t *testing.T) {
	store := newVault(t)
	_, err := store.ReadFullText(context.Background(), &vault.Document{Path: "Bible/Gen 9.md"})
	if !errors.Is(err, verrors.ErrDocumentNotFound) {
		t.Errorf("ReadFullText() error = %v, want ErrDocumentNotFound", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFullText() error = %v, want os.ErrNotExist in chain", err)
	}
}

func TestReadFullTextOutsideVault(t *testing.T) {
	store := newVault(t)
	_, err := store.ReadFullText(context.Background(), &vault.Document{Path: "../secret.md"})
	if !errors.Is(err, validation.ErrPathTraversal) {
		t.Errorf("ReadFullText() error = %v, want ErrPathTraversal", err)
	}
}

func TestHeadingsCache(t *testing.T) {
	store := newVault(t)
	ctx := context.Background()
	doc := &vault.Document{Path: "Bible/ESV/Gen 1.md"}

	headings, err := store.Headings(ctx, doc)
	if err != nil {
		t.Fatalf("Headings() error: %v", err)
	}
	if len(headings) != 3 || headings[2].Text != "2" || headings[2].Line != 3 {
		t.Errorf("Headings() = %+v", headings)
	}

	if _, err := store.Headings(ctx, doc); err != nil {
		t.Fatal(err)
	}
	if stats := store.CacheStats(); stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("CacheStats() after repeat = %+v", stats)
	}

	writeFile(t, store.Root(), doc.Path, []byte("# Gen 1\n###### 1\nchanged\n"))
	headings, err = store.Headings(ctx, doc)
	if err != nil {
		t.Fatal(err)
	}
	if len(headings) != 2 {
		t.Errorf("Headings() after edit = %+v, want re-parsed", headings)
	}
}

func TestInvalidate(t *testing.T) {
	ctx := context.Background()
	store := newVault(t)
	if _, ok := store.ResolveByName("Gen 3", ""); ok {
		t.Fatal("Gen 3 found before it exists")
	}
	doc, ok := store.ResolveByName("Gen 1", "Bible/NIV/")
	if !ok {
		t.Fatal("Gen 1 not found")
	}
	if _, err := store.Headings(ctx, doc); err != nil {
		t.Fatal(err)
	}

	writeFile(t, store.Root(), "Bible/ESV/Gen 3.md", []byte(chapter))
	store.Invalidate()
	if _, ok := store.ResolveByName("Gen 3", ""); !ok {
		t.Error("Gen 3 not found after Invalidate")
	}
	if size := store.CacheStats().Size; size != 0 {
		t.Errorf("heading cache size after Invalidate = %d, want 0", size)
	}
}

func TestParentFolderPath(t *testing.T) {
	store := newVault(t)
	if got := store.ParentFolderPath(&vault.Document{Path: "Bible/ESV/Gen 1.md"}); got != "Bible/ESV" {
		t.Errorf("ParentFolderPath() = %q", got)
	}
}
