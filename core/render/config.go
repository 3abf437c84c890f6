package render

import (
	"fmt"
	"strings"
)

// LinkingScope selects which translations receive links when multiple
// translations are enabled.
type LinkingScope int

const (
	// LinkAll links every configured translation.
	LinkAll LinkingScope = iota
	// LinkUsed links only the translation being quoted.
	LinkUsed
	// LinkUsedAndMain links the quoted translation and the main one.
	LinkUsedAndMain
	// LinkMain links only the main translation.
	LinkMain
)

var linkingScopeNames = map[LinkingScope]string{
	LinkAll:         "all",
	LinkUsed:        "used",
	LinkUsedAndMain: "usedAndMain",
	LinkMain:        "main",
}

func (s LinkingScope) String() string {
	if name, ok := linkingScopeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("LinkingScope(%d)", int(s))
}

// ParseLinkingScope accepts the persisted names "all", "used",
// "usedAndMain" and "main", ignoring case.
func ParseLinkingScope(s string) (LinkingScope, error) {
	for scope, name := range linkingScopeNames {
		if strings.EqualFold(s, name) {
			return scope, nil
		}
	}
	return LinkAll, fmt.Errorf("unknown translation linking type %q", s)
}

// LinkFlavor selects the shape of links produced by Links.
type LinkFlavor int

const (
	// Basic produces plain wikilinks.
	Basic LinkFlavor = iota
	// Embedded prefixes the first link with "!".
	Embedded
	// Invisible adds an empty alias to every link and the expanded input
	// as alias of the first one.
	Invisible
)

var linkFlavorNames = map[LinkFlavor]string{
	Basic:     "basic",
	Embedded:  "embedded",
	Invisible: "invisible",
}

func (f LinkFlavor) String() string {
	if name, ok := linkFlavorNames[f]; ok {
		return name
	}
	return fmt.Sprintf("LinkFlavor(%d)", int(f))
}

// ParseLinkFlavor accepts "basic", "embedded" and "invisible", ignoring case.
func ParseLinkFlavor(s string) (LinkFlavor, error) {
	for flavor, name := range linkFlavorNames {
		if strings.EqualFold(s, name) {
			return flavor, nil
		}
	}
	return Basic, fmt.Errorf("unknown link type %q", s)
}

// Config holds every option that affects rendering. It is passed by value
// and never modified by the renderer.
type Config struct {
	// VerseOffset is added to verse numbers before they index headings.
	VerseOffset int `json:"verseOffset"`
	// VerseHeadingLevel restricts verse boundaries to one heading level.
	// Zero means every heading counts.
	VerseHeadingLevel int `json:"verseHeadingLevel"`

	// Prefix starts the output and every quoted line.
	Prefix string `json:"prefix"`
	// Postfix follows the visible link. A literal `\n` is a line break.
	// Empty means a single space.
	Postfix string `json:"postfix"`
	// EachVersePrefix is expanded before each verse: {n} is the verse
	// number and {f} the file name.
	EachVersePrefix string `json:"eachVersePrefix"`
	// FirstLinePrefix precedes the visible link in NewLines mode.
	FirstLinePrefix string `json:"firstLinePrefix"`

	LinkEndVerse      bool `json:"linkEndVerse"`
	UseInvisibleLinks bool `json:"useInvisibleLinks"`
	NewLines          bool `json:"newLines"`
	InsertSpace       bool `json:"insertSpace"`

	OneVerseNotation       string `json:"oneVerseNotation"`
	MultipleVersesNotation string `json:"multipleVersesNotation"`

	EnableMultipleTranslations bool `json:"enableMultipleTranslations"`
	// TranslationPaths are vault folders ending in "/". The first one is
	// the main translation.
	TranslationPaths   []string     `json:"translationPaths"`
	TranslationLinking LinkingScope `json:"translationLinking"`

	CommentStart string `json:"commentStart"`
	CommentEnd   string `json:"commentEnd"`

	// LinkSeparator and VersePrefix build link targets in Links:
	// [[<book and chapter><LinkSeparator><VersePrefix><verse>]].
	LinkSeparator       string `json:"linkSeparator"`
	VersePrefix         string `json:"versePrefix"`
	CapitalizeBookNames bool   `json:"capitalizeBookNames"`
	VerifyFiles         bool   `json:"verifyFiles"`
}

// DefaultConfig returns the default rendering options.
func DefaultConfig() Config {
	return Config{
		UseInvisibleLinks:      true,
		InsertSpace:            true,
		OneVerseNotation:       ".",
		MultipleVersesNotation: ",",
		TranslationLinking:     LinkAll,
		LinkSeparator:          "#",
		CapitalizeBookNames:    true,
	}
}

// MainTranslation returns the first translation path, or "" if none.
func (c Config) MainTranslation() string {
	if len(c.TranslationPaths) == 0 {
		return ""
	}
	return c.TranslationPaths[0]
}

// TranslationName returns the display name of a translation path: its
// last non-empty segment, so "Bible/NIV/" is "NIV".
func TranslationName(p string) string {
	p = strings.TrimRight(p, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// FindTranslation returns the configured path whose path or name equals
// s, ignoring case and trailing slashes.
func (c Config) FindTranslation(s string) (string, bool) {
	want := strings.TrimRight(s, "/")
	for _, p := range c.TranslationPaths {
		if strings.EqualFold(strings.TrimRight(p, "/"), want) || strings.EqualFold(TranslationName(p), want) {
			return p, true
		}
	}
	return "", false
}
