package vault

import (
	"github.com/FocuswithJustin/versequote/core/errors"
	"github.com/FocuswithJustin/versequote/core/ref"
)

// Resolved is a document found by Resolve.
type Resolved struct {
	// Name is the name the document was found under: the requested name,
	// or its filename-convention form when the retry succeeded.
	Name string

	Document *Document
}

// Resolve looks name up in store, preferring documents under searchRoot.
// When the first lookup fails and name has the "<book> <chapter>" shape,
// it retries once with the "<book>-<nn>" filename convention.
func Resolve(store Store, name, searchRoot string) (Resolved, error) {
	if doc, ok := store.ResolveByName(name, searchRoot); ok {
		return Resolved{Name: name, Document: doc}, nil
	}

	converted, ok := ref.ToFilenameConvention(name)
	if !ok {
		return Resolved{}, errors.NewNotFound(name, searchRoot)
	}
	if doc, ok := store.ResolveByName(converted, searchRoot); ok {
		return Resolved{Name: converted, Document: doc}, nil
	}
	return Resolved{}, errors.NewNotFound(converted, searchRoot)
}

// FolderIn returns the parent folder of the document name resolves to
// when looked up from translationRoot.
func FolderIn(store Store, name, translationRoot string) (string, error) {
	res, err := Resolve(store, name, translationRoot)
	if err != nil {
		return "", err
	}
	return store.ParentFolderPath(res.Document), nil
}
