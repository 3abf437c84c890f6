// Package render turns parsed references into wikilinks and quotations.
//
// Quote renders a visible link to the referenced verses, the verse text
// and invisible backlinks to the verses in between. Links renders links
// only, for a verse range or a chapter range.
//
// Rendering never notifies the user directly: failures are returned as
// errors from core/errors, and a Notifier receives the human-readable
// message only when the caller asks for verbose behavior.
package render

import (
	"github.com/FocuswithJustin/versequote/core/errors"
	"github.com/FocuswithJustin/versequote/core/vault"
)

// Notifier receives user-facing warnings.
type Notifier interface {
	Warn(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Warn calls f(message).
func (f NotifierFunc) Warn(message string) { f(message) }

type nopNotifier struct{}

func (nopNotifier) Warn(string) {}

// Renderer renders references against a document store.
type Renderer struct {
	store    vault.Store
	notifier Notifier
}

// New creates a Renderer. A nil notifier discards warnings.
func New(store vault.Store, notifier Notifier) *Renderer {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Renderer{store: store, notifier: notifier}
}

func (r *Renderer) warn(err error) {
	r.notifier.Warn(errors.Notice(err))
}

// linkTarget joins a folder and a file name; the vault root adds nothing.
func linkTarget(folder, file string) string {
	if folder == "" || folder == "/" {
		return file
	}
	return folder + "/" + file
}
