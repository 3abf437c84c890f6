package vault

import (
	"context"
	"errors"
	"testing"

	verrors "github.com/FocuswithJustin/versequote/core/errors"
)

func TestBasename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Bible/NIV/Gen 1.md", "Gen 1"},
		{"Gen 1.md", "Gen 1"},
		{"Bible/ESV/Gen-01.md.xz", "Gen-01"},
		{"Bible\\KJV\\Ps 23.MD", "Ps 23"},
		{"notes/readme", "readme"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Basename(tt.input); got != tt.want {
				t.Errorf("Basename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParentFolder(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Bible/NIV/Gen 1.md", "Bible/NIV"},
		{"Gen 1.md", "/"},
		{"a/b.md", "a"},
	}

	for _, tt := range tests {
		if got := ParentFolder(tt.input); got != tt.want {
			t.Errorf("ParentFolder(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCleanRoot(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"/", ""},
		{".", ""},
		{"Bible/NIV", "Bible/NIV/"},
		{"/Bible/NIV/", "Bible/NIV/"},
		{"Bible\\ESV", "Bible/ESV/"},
	}

	for _, tt := range tests {
		if got := CleanRoot(tt.input); got != tt.want {
			t.Errorf("CleanRoot(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPick(t *testing.T) {
	paths := []string{"Bible/NIV/Gen 1.md", "Bible/ESV/Gen 1.md", "Gen 1.md"}

	tests := []struct {
		name string
		root string
		want string
	}{
		{"whole vault prefers shortest", "", "Gen 1.md"},
		{"root wins over shorter path", "Bible/ESV", "Bible/ESV/Gen 1.md"},
		{"unknown root falls back to shortest", "Bible/KJV", "Gen 1.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pick(paths, tt.root); got != tt.want {
				t.Errorf("Pick(%q) = %q, want %q", tt.root, got, tt.want)
			}
		})
	}

	if got := Pick(nil, ""); got != "" {
		t.Errorf("Pick(nil) = %q, want empty", got)
	}
	if got := Pick([]string{"b/Gen 1.md", "a/Gen 1.md"}, ""); got != "a/Gen 1.md" {
		t.Errorf("Pick() tie = %q, want lexical first", got)
	}
}

func TestMatchesName(t *testing.T) {
	tests := []struct {
		path string
		name string
		want bool
	}{
		{"Bible/NIV/Gen 1.md", "Gen 1", true},
		{"Bible/NIV/Gen 1.md", "gen 1", true},
		{"Bible/NIV/Gen 1.md", "Gen 12", false},
		{"Bible/NIV/Gen 1.md", "NIV/Gen 1", true},
		{"Bible/NIV/Gen 1.md", "Bible/NIV/Gen 1", true},
		{"Bible/NIV/Gen 1.md", "ESV/Gen 1", false},
		{"Bible/NIV/Gen 1.md", "IV/Gen 1", false},
		{"Bible/NIV/Gen-01.md.xz", "Gen-01", true},
		{"Bible/NIV/Gen 1.md", "", false},
	}

	for _, tt := range tests {
		if got := MatchesName(tt.path, tt.name); got != tt.want {
			t.Errorf("MatchesName(%q, %q) = %v, want %v", tt.path, tt.name, got, tt.want)
		}
	}
}

func TestMemStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	store.Put("Bible/NIV/Gen 1.md", "# Gen 1\n###### 1\nIn the beginning\n")
	store.Put("/Bible/ESV/Gen 1.md", "# Gen 1\n")

	doc, ok := store.ResolveByName("Gen 1", "Bible/NIV/")
	if !ok {
		t.Fatal("ResolveByName() found nothing")
	}
	if doc.Path != "Bible/NIV/Gen 1.md" {
		t.Errorf("ResolveByName() = %q, want NIV document", doc.Path)
	}
	if got := store.ParentFolderPath(doc); got != "Bible/NIV" {
		t.Errorf("ParentFolderPath() = %q, want %q", got, "Bible/NIV")
	}

	headings, err := store.Headings(ctx, doc)
	if err != nil {
		t.Fatalf("Headings() error: %v", err)
	}
	if len(headings) != 2 || headings[1].Text != "1" || headings[1].Line != 1 || headings[1].Level != 6 {
		t.Errorf("Headings() = %+v", headings)
	}

	if _, err := store.ReadFullText(ctx, &Document{Path: "missing.md"}); !errors.Is(err, verrors.ErrDocumentNotFound) {
		t.Errorf("ReadFullText(missing) error = %v, want ErrDocumentNotFound", err)
	}
}

func TestMemStoreCanceledContext(t *testing.T) {
	store := NewMemStore()
	store.Put("Gen 1.md", "# Gen 1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.ReadFullText(ctx, &Document{Path: "Gen 1.md"}); !errors.Is(err, context.Canceled) {
		t.Errorf("ReadFullText() error = %v, want context.Canceled", err)
	}
}
