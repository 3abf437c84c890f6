// Package ref recognizes human-typed biblical references such as
// "Gen 1,1", "Gen 1,1-3" and "Gen 1-3".
//
// The grammar is a fixed set of anchored regular expressions:
//
//	single verse   <book and chapter><sep><verse>          sep ∈ , # . : ;
//	verse range    <book and chapter><sep><verse><r><verse> r ∈ - . =
//	chapter range  <book> <chapter>-<chapter>
//
// A verse range is always tried before a single verse. Callers that accept
// both chapter ranges and verses must try ParseBook first.
package ref

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/versequote/core/errors"
)

// Kind is the grammar form a raw reference was classified as.
type Kind int

const (
	// NoMatch means no grammar form recognized the input.
	NoMatch Kind = iota
	// SingleVerse is "<book and chapter><sep><verse>".
	SingleVerse
	// VerseRange is "<book and chapter><sep><begin><r><end>".
	VerseRange
	// ChapterRange is "<book> <first>-<last>".
	ChapterRange
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case SingleVerse:
		return "single-verse"
	case VerseRange:
		return "verse-range"
	case ChapterRange:
		return "chapter-range"
	default:
		return "no-match"
	}
}

var (
	// "Gen 1,1", "Gen 1:1", "1 Cor 13.4"
	singleVerseRe = regexp.MustCompile(`^([^,:#]+)[,#.:;]\s*(\d+)\s*$`)
	// "Gen 1,1-3", "Gen 1:1=3"
	verseRangeRe = regexp.MustCompile(`^([^,:#]+)[,#.:;]\s*(\d+)\s*[-.=]\s*(\d+)\s*$`)
	// "Gen 1-3", "1 Cor 1-4"
	chapterRangeRe = regexp.MustCompile(`^(\d*[^\d,#.:;]+)\s*(\d+)\s*-\s*(\d+)\s*$`)
)

// VerseReference is a parsed single verse or verse range within one chapter.
// No ordering is enforced between BeginVerse and EndVerse.
type VerseReference struct {
	// BookAndChapter is the token before the separator, e.g. "Gen 1".
	BookAndChapter string `json:"book_and_chapter"`

	// BeginVerse is the first verse number as typed.
	BeginVerse int `json:"begin_verse"`

	// EndVerse equals BeginVerse for a single verse.
	EndVerse int `json:"end_verse"`
}

// BookReference is a parsed chapter range.
type BookReference struct {
	// Book is the trimmed book name, e.g. "1 Cor".
	Book string `json:"book"`

	FirstChapter int `json:"first_chapter"`
	LastChapter  int `json:"last_chapter"`
}

// Classify reports which grammar form matches raw, without extracting it.
// Chapter ranges take priority, then verse ranges, then single verses.
func Classify(raw string) Kind {
	switch {
	case chapterRangeRe.MatchString(raw):
		return ChapterRange
	case verseRangeRe.MatchString(raw):
		return VerseRange
	case singleVerseRe.MatchString(raw):
		return SingleVerse
	default:
		return NoMatch
	}
}

// IsChapterRange reports whether raw is a chapter range such as "Gen 1-3".
func IsChapterRange(raw string) bool {
	return chapterRangeRe.MatchString(raw)
}

// ParseVerse parses a single verse or verse range.
// It returns a *errors.ReferenceError when neither form matches.
func ParseVerse(raw string) (VerseReference, error) {
	if m := verseRangeRe.FindStringSubmatch(raw); m != nil {
		begin, err1 := strconv.Atoi(m[2])
		end, err2 := strconv.Atoi(m[3])
		if err1 != nil || err2 != nil {
			return VerseReference{}, &errors.ReferenceError{Input: raw, Err: firstErr(err1, err2)}
		}
		return VerseReference{BookAndChapter: m[1], BeginVerse: begin, EndVerse: end}, nil
	}

	if m := singleVerseRe.FindStringSubmatch(raw); m != nil {
		verse, err := strconv.Atoi(m[2])
		if err != nil {
			return VerseReference{}, &errors.ReferenceError{Input: raw, Err: err}
		}
		return VerseReference{BookAndChapter: m[1], BeginVerse: verse, EndVerse: verse}, nil
	}

	return VerseReference{}, errors.NewReference(raw)
}

// ParseBook parses a chapter range. The book name is trimmed.
func ParseBook(raw string) (BookReference, error) {
	m := chapterRangeRe.FindStringSubmatch(raw)
	if m == nil {
		return BookReference{}, errors.NewReference(raw)
	}

	first, err1 := strconv.Atoi(m[2])
	last, err2 := strconv.Atoi(m[3])
	if err1 != nil || err2 != nil {
		return BookReference{}, &errors.ReferenceError{Input: raw, Err: firstErr(err1, err2)}
	}

	return BookReference{
		Book:         strings.TrimSpace(m[1]),
		FirstChapter: first,
		LastChapter:  last,
	}, nil
}

// firstErr returns the first non-nil error. Digit runs only fail to
// convert when they overflow int.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
