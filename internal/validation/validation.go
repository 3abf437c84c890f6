// Package validation guards vault-relative document paths against
// traversal outside the vault.
package validation

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"unicode"
)

// MaxPathLength is the maximum allowed document path length.
const MaxPathLength = 4096

// Path validation errors.
var (
	ErrPathTraversal    = errors.New("path traversal detected")
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrEmptyPath        = errors.New("path cannot be empty")
)

// CleanDocumentPath validates a slash-separated vault-relative path and
// returns it cleaned. Absolute paths and paths that leave the vault are
// rejected.
func CleanDocumentPath(p string) (string, error) {
	if p == "" {
		return "", ErrEmptyPath
	}
	if len(p) > MaxPathLength {
		return "", ErrPathTooLong
	}
	for _, r := range p {
		if r == 0 || unicode.IsControl(r) {
			return "", fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}

	p = strings.ReplaceAll(p, "\\", "/")
	if strings.HasPrefix(p, "/") || filepath.IsAbs(p) || filepath.VolumeName(p) != "" {
		return "", fmt.Errorf("%w: absolute path not allowed", ErrPathTraversal)
	}

	clean := path.Clean(p)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", ErrPathTraversal
	}
	if clean == "." {
		return "", ErrEmptyPath
	}
	return clean, nil
}

// JoinDocumentPath resolves the vault-relative path p under root.
func JoinDocumentPath(root, p string) (string, error) {
	clean, err := CleanDocumentPath(p)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, filepath.FromSlash(clean)), nil
}
