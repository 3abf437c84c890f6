package validation

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestCleanDocumentPath(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		want      string
		wantError error
	}{
		{"simple valid path", "Gen 1.md", "Gen 1.md", nil},
		{"nested valid path", "Bible/NIV/Gen 1.md", "Bible/NIV/Gen 1.md", nil},
		{"redundant separators", "Bible//NIV/./Gen 1.md", "Bible/NIV/Gen 1.md", nil},
		{"backslashes", `Bible\NIV\Gen 1.md`, "Bible/NIV/Gen 1.md", nil},
		{"dots inside a name", "Notes/Gen..md", "Notes/Gen..md", nil},
		{"inner dotdot stays inside", "Bible/NIV/../ESV/Gen 1.md", "Bible/ESV/Gen 1.md", nil},
		{"empty", "", "", ErrEmptyPath},
		{"dot", ".", "", ErrEmptyPath},
		{"traversal", "../etc/passwd", "", ErrPathTraversal},
		{"traversal in middle", "Bible/../../etc/passwd", "", ErrPathTraversal},
		{"absolute", "/etc/passwd", "", ErrPathTraversal},
		{"null byte", "Gen\x001.md", "", ErrInvalidCharacter},
		{"too long", strings.Repeat("a", MaxPathLength+1), "", ErrPathTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanDocumentPath(tt.path)
			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Errorf("CleanDocumentPath(%q) error = %v, want %v", tt.path, err, tt.wantError)
				}
				return
			}
			if err != nil {
				t.Fatalf("CleanDocumentPath(%q) unexpected error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("CleanDocumentPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestJoinDocumentPath(t *testing.T) {
	root := t.TempDir()
	got, err := JoinDocumentPath(root, "Bible/Gen 1.md")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(root, "Bible", "Gen 1.md"); got != want {
		t.Errorf("JoinDocumentPath() = %q, want %q", got, want)
	}
	if _, err := JoinDocumentPath(root, "../outside.md"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("JoinDocumentPath(outside) error = %v", err)
	}
}
