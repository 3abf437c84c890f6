// Package vault defines the document store the reference pipeline reads
// chapters from, together with the name resolution used to find them.
//
// A vault is a tree of per-chapter markdown documents. Each verse is
// marked by a heading; heading 0 of a chapter is its title.
package vault

import (
	"context"
	"path"
	"strings"
)

// Heading is one heading of a document.
type Heading struct {
	// Text is the heading text without the leading markers, e.g. "3".
	Text string `json:"text"`

	// Line is the 0-based line the heading is on.
	Line int `json:"line"`

	// Level is the number of leading '#' characters (1-6).
	Level int `json:"level"`
}

// Document is an opaque handle to a document in a store.
type Document struct {
	// Path is the vault-relative path with forward slashes, including
	// the extension, e.g. "Bible/NIV/Genesis/Gen 1.md".
	Path string `json:"path"`
}

// Basename returns the file name without directories or extensions.
func (d *Document) Basename() string {
	return Basename(d.Path)
}

// Store is the capability interface over the host's document tree.
type Store interface {
	// ResolveByName finds the document a link target name points at,
	// preferring documents under searchRoot. It reports false when no
	// document matches.
	ResolveByName(name, searchRoot string) (*Document, bool)

	// ReadFullText returns the full text of doc.
	ReadFullText(ctx context.Context, doc *Document) (string, error)

	// Headings returns the headings of doc in document order.
	Headings(ctx context.Context, doc *Document) ([]Heading, error)

	// ParentFolderPath returns the vault-relative folder of doc without a
	// trailing slash; "/" for the vault root.
	ParentFolderPath(doc *Document) string
}

// documentExtensions are stripped by Basename, longest first.
var documentExtensions = []string{".md.xz", ".md"}

// Basename returns the last element of p without a document extension.
func Basename(p string) string {
	base := path.Base(strings.ReplaceAll(p, "\\", "/"))
	lower := strings.ToLower(base)
	for _, ext := range documentExtensions {
		if strings.HasSuffix(lower, ext) {
			return base[:len(base)-len(ext)]
		}
	}
	return base
}

// ParentFolder returns the folder of a vault-relative path, "/" for root.
func ParentFolder(p string) string {
	dir := path.Dir(strings.ReplaceAll(p, "\\", "/"))
	if dir == "." || dir == "" {
		return "/"
	}
	return dir
}

// CleanRoot normalizes a search root: no leading slash, exactly one
// trailing slash, "" for the whole vault.
func CleanRoot(root string) string {
	root = strings.Trim(strings.ReplaceAll(root, "\\", "/"), "/")
	if root == "" || root == "." {
		return ""
	}
	return root + "/"
}

// Pick chooses among documents whose name matches a lookup. Documents
// under root win; ties go to the shortest path, then lexical order.
// It returns "" when paths is empty.
func Pick(paths []string, root string) string {
	root = CleanRoot(root)
	best := ""
	bestInRoot := false
	for _, p := range paths {
		inRoot := root == "" || strings.HasPrefix(p, root)
		if best == "" || preferred(p, inRoot, best, bestInRoot) {
			best, bestInRoot = p, inRoot
		}
	}
	return best
}

func preferred(p string, inRoot bool, best string, bestInRoot bool) bool {
	if inRoot != bestInRoot {
		return inRoot
	}
	if len(p) != len(best) {
		return len(p) < len(best)
	}
	return p < best
}

// MatchesName reports whether the document at p is the target of link
// name. name is either a bare document name or a vault-relative path
// without extension; comparison ignores case.
func MatchesName(p, name string) bool {
	name = strings.Trim(strings.ReplaceAll(name, "\\", "/"), "/")
	if name == "" {
		return false
	}

	withoutExt := strings.TrimSuffix(p, path.Base(p)) + Basename(p)
	if !strings.Contains(name, "/") {
		return strings.EqualFold(Basename(p), name)
	}
	return strings.EqualFold(withoutExt, name) ||
		strings.HasSuffix(strings.ToLower(withoutExt), "/"+strings.ToLower(name))
}
