// Package errors provides the failure taxonomy shared by the reference
// parsing, document lookup and rendering pipeline.
//
// Every failure kind has a sentinel error and a typed error carrying
// context. Typed errors unwrap to their sentinel, so callers can branch on
// the kind with errors.Is and recover the context with errors.As.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for each failure kind.
var (
	// ErrMalformedReference indicates the raw input matched no grammar form.
	ErrMalformedReference = errors.New("malformed reference")
	// ErrDocumentNotFound indicates name resolution failed, retry included.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrRange indicates an inverted or empty verse/chapter span.
	ErrRange = errors.New("invalid range")
	// ErrVerseOutOfRange indicates a verse index without a heading.
	ErrVerseOutOfRange = errors.New("verse out of range")
	// ErrMalformedDocument indicates a heading with no content line after it.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrInvalidInput indicates an invalid option or settings value.
	ErrInvalidInput = errors.New("invalid input")
)

// ReferenceError reports raw input that no grammar form recognizes.
type ReferenceError struct {
	Input string // Raw user input, kept verbatim for display
	Err   error  // Underlying error, if any
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("malformed reference: %q", e.Input)
}

// Unwrap reports both the sentinel and the underlying error, so the kind
// survives a conversion failure.
func (e *ReferenceError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedReference, e.Err}
	}
	return []error{ErrMalformedReference}
}

// NotFoundError reports a document name that could not be resolved.
type NotFoundError struct {
	Name       string // Name that was looked up (after any filename conversion)
	SearchRoot string // Subtree the lookup was scoped to
	Err        error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.SearchRoot != "" && e.SearchRoot != "/" {
		return fmt.Sprintf("document not found: %s (in %s)", e.Name, e.SearchRoot)
	}
	return fmt.Sprintf("document not found: %s", e.Name)
}

func (e *NotFoundError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrDocumentNotFound, e.Err}
	}
	return []error{ErrDocumentNotFound}
}

// RangeReason distinguishes the ways a span can be empty.
type RangeReason int

const (
	// RangeInverted means begin was already greater than end.
	RangeInverted RangeReason = iota
	// RangeExceedsChapter means begin lies beyond the last heading of the chapter.
	RangeExceedsChapter
)

// RangeError reports an inverted or empty span of verses or chapters.
type RangeError struct {
	Unit   string // "verse" or "chapter"
	Begin  int
	End    int
	Reason RangeReason
}

func (e *RangeError) Error() string {
	unit := e.Unit
	if unit == "" {
		unit = "verse"
	}
	if e.Reason == RangeExceedsChapter {
		return fmt.Sprintf("begin %s %d exceeds chapter maximum %d", unit, e.Begin, e.End)
	}
	return fmt.Sprintf("begin %s %d is bigger than end %s %d", unit, e.Begin, unit, e.End)
}

// Unwrap reports ErrRange. An inverted span is a grammar-level failure
// found before any lookup, so it is also ErrMalformedReference.
func (e *RangeError) Unwrap() []error {
	if e.Reason == RangeInverted {
		return []error{ErrRange, ErrMalformedReference}
	}
	return []error{ErrRange}
}

// VerseOutOfRangeError reports a verse index with no matching heading.
type VerseOutOfRangeError struct {
	Verse    int // Requested heading index
	Headings int // Number of headings available
}

func (e *VerseOutOfRangeError) Error() string {
	return fmt.Sprintf("verse %d is out of range of headings with length %d", e.Verse, e.Headings)
}

func (e *VerseOutOfRangeError) Unwrap() error {
	return ErrVerseOutOfRange
}

// MalformedDocumentError reports a heading that is the last line of its document.
type MalformedDocumentError struct {
	Document string // Document name, if known
	Line     int    // Line of the offending heading
	Lines    int    // Number of lines in the document
}

func (e *MalformedDocumentError) Error() string {
	if e.Document != "" {
		return fmt.Sprintf("malformed document %s: heading at line %d has no following line (%d lines)", e.Document, e.Line, e.Lines)
	}
	return fmt.Sprintf("malformed document: heading at line %d has no following line (%d lines)", e.Line, e.Lines)
}

func (e *MalformedDocumentError) Unwrap() error {
	return ErrMalformedDocument
}

// ValidationError represents an invalid option or settings value.
type ValidationError struct {
	Field   string // Field name that failed validation
	Value   string // Offending value
	Message string // Human-readable error message
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Helper functions for creating common errors

// NewReference creates a ReferenceError
func NewReference(input string) *ReferenceError {
	return &ReferenceError{Input: input}
}

// NewNotFound creates a NotFoundError
func NewNotFound(name, searchRoot string) *NotFoundError {
	return &NotFoundError{Name: name, SearchRoot: searchRoot}
}

// NewRange creates a RangeError
func NewRange(unit string, begin, end int, reason RangeReason) *RangeError {
	return &RangeError{Unit: unit, Begin: begin, End: end, Reason: reason}
}

// NewValidation creates a ValidationError
func NewValidation(field, value, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// Notice returns the message shown to a user for err. Errors outside the
// taxonomy fall back to err.Error().
func Notice(err error) string {
	if err == nil {
		return ""
	}

	var refErr *ReferenceError
	var nfErr *NotFoundError
	var rangeErr *RangeError
	var docErr *MalformedDocumentError
	switch {
	case errors.As(err, &refErr):
		return fmt.Sprintf("Wrong format %q", refErr.Input)
	case errors.As(err, &nfErr):
		return fmt.Sprintf("File %s not found", nfErr.Name)
	case errors.As(err, &rangeErr):
		if rangeErr.Unit == "chapter" {
			return "Begin chapter is bigger than end chapter"
		}
		if rangeErr.Reason == RangeExceedsChapter {
			return "Begin verse is bigger than chapter maximum"
		}
		return "Begin verse is bigger than end verse"
	case errors.Is(err, ErrVerseOutOfRange):
		return "Verse out of range for given file"
	case errors.As(err, &docErr):
		return fmt.Sprintf("Document %q has a heading without text at line %d", docErr.Document, docErr.Line)
	}
	return err.Error()
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
