// Package settings loads the persisted settings document into rendering
// options and link presets.
//
// The document uses the camelCase keys of the vault plugin's data.json.
// Keys that are absent keep their default value.
package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/versequote/core/errors"
	"github.com/FocuswithJustin/versequote/core/render"
)

// Settings is a loaded settings document.
type Settings struct {
	Render render.Config

	// LinkFlavorPreset is the default flavor of the links command.
	LinkFlavorPreset render.LinkFlavor
	// NewLinePreset is the default of the links command's newline option.
	NewLinePreset bool
	// LinkOnly is the default of the quote command's link-only option.
	LinkOnly bool
}

// Default returns the settings used when no document is given.
func Default() Settings {
	return Settings{
		Render:           render.DefaultConfig(),
		LinkFlavorPreset: render.Basic,
	}
}

// document mirrors the persisted JSON. Pointers tell absent keys apart.
type document struct {
	VerseOffset       *flexInt `json:"verseOffset"`
	VerseHeadingLevel *flexInt `json:"verseHeadingLevel"`

	Prefix          *string `json:"prefix"`
	Postfix         *string `json:"postfix"`
	EachVersePrefix *string `json:"eachVersePrefix"`
	FirstLinePrefix *string `json:"firstLinePrefix"`

	LinkEndVerse      *bool `json:"linkEndVerse"`
	UseInvisibleLinks *bool `json:"useInvisibleLinks"`
	LinkOnly          *bool `json:"linkOnly"`
	NewLines          *bool `json:"newLines"`
	InsertSpace       *bool `json:"insertSpace"`

	OneVerseNotation       *string `json:"oneVerseNotation"`
	MultipleVersesNotation *string `json:"multipleVersesNotation"`

	EnableMultipleTranslations *bool    `json:"enableMultipleTranslations"`
	TranslationsPaths          *string  `json:"translationsPaths"`
	ParsedTranslationPaths     []string `json:"parsedTranslationPaths"`
	TranslationLinkingType     *string  `json:"translationLinkingType"`

	CommentStart *string `json:"commentStart"`
	CommentEnd   *string `json:"commentEnd"`

	LinkSeparator  *string `json:"linkSeparator"`
	VersePrefix    *string `json:"versePrefix"`
	LinkTypePreset *string `json:"linkTypePreset"`
	NewLinePreset  *bool   `json:"newLinePreset"`

	ShouldCapitalizeBookNames *bool `json:"shouldCapitalizeBookNames"`
	VerifyFilesWhenLinking    *bool `json:"verifyFilesWhenLinking"`
}

// flexInt is a number that may also be stored as a string. "any" and
// empty values are stored as zero.
type flexInt struct {
	value int
	raw   string
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		s = n.String()
	}
	f.raw = s

	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "any") {
		f.value = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	f.value = n
	return nil
}

// Load reads the settings document at path.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, errors.Wrap(err, "read settings")
	}
	s, err := Parse(data)
	if err != nil {
		return Settings{}, errors.Wrapf(err, "settings %s", path)
	}
	return s, nil
}

// Parse decodes a settings document on top of Default.
func Parse(data []byte) (Settings, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Settings{}, errors.NewValidation("settings", "", err.Error())
	}

	s := Default()
	cfg := &s.Render

	if doc.VerseOffset != nil {
		cfg.VerseOffset = doc.VerseOffset.value
	}
	if doc.VerseHeadingLevel != nil {
		level := doc.VerseHeadingLevel.value
		if level < 0 || level > 6 {
			return Settings{}, errors.NewValidation("verseHeadingLevel", doc.VerseHeadingLevel.raw, "must be 1-6 or any")
		}
		cfg.VerseHeadingLevel = level
	}

	setString(&cfg.Prefix, doc.Prefix)
	setString(&cfg.Postfix, doc.Postfix)
	setString(&cfg.EachVersePrefix, doc.EachVersePrefix)
	setString(&cfg.FirstLinePrefix, doc.FirstLinePrefix)
	setString(&cfg.OneVerseNotation, doc.OneVerseNotation)
	setString(&cfg.MultipleVersesNotation, doc.MultipleVersesNotation)
	setString(&cfg.CommentStart, doc.CommentStart)
	setString(&cfg.CommentEnd, doc.CommentEnd)
	setString(&cfg.LinkSeparator, doc.LinkSeparator)
	setString(&cfg.VersePrefix, doc.VersePrefix)

	setBool(&cfg.LinkEndVerse, doc.LinkEndVerse)
	setBool(&cfg.UseInvisibleLinks, doc.UseInvisibleLinks)
	setBool(&cfg.NewLines, doc.NewLines)
	setBool(&cfg.InsertSpace, doc.InsertSpace)
	setBool(&cfg.EnableMultipleTranslations, doc.EnableMultipleTranslations)
	setBool(&cfg.CapitalizeBookNames, doc.ShouldCapitalizeBookNames)
	setBool(&cfg.VerifyFiles, doc.VerifyFilesWhenLinking)
	setBool(&s.LinkOnly, doc.LinkOnly)
	setBool(&s.NewLinePreset, doc.NewLinePreset)

	switch {
	case doc.TranslationsPaths != nil:
		cfg.TranslationPaths = ParseTranslationPaths(*doc.TranslationsPaths)
	case doc.ParsedTranslationPaths != nil:
		cfg.TranslationPaths = normalizePaths(doc.ParsedTranslationPaths)
	}

	if doc.TranslationLinkingType != nil {
		scope, err := render.ParseLinkingScope(*doc.TranslationLinkingType)
		if err != nil {
			return Settings{}, errors.NewValidation("translationLinkingType", *doc.TranslationLinkingType, err.Error())
		}
		cfg.TranslationLinking = scope
	}
	if doc.LinkTypePreset != nil {
		flavor, err := render.ParseLinkFlavor(*doc.LinkTypePreset)
		if err != nil {
			return Settings{}, errors.NewValidation("linkTypePreset", *doc.LinkTypePreset, err.Error())
		}
		s.LinkFlavorPreset = flavor
	}

	if _, err := render.ParseTemplate(cfg.EachVersePrefix); err != nil {
		return Settings{}, errors.NewValidation("eachVersePrefix", cfg.EachVersePrefix, err.Error())
	}
	return s, nil
}

// TranslationRoot returns the folder to quote from for the translation
// named by path or name. An empty name selects the main translation. With
// multiple translations disabled the whole vault is searched.
func (s Settings) TranslationRoot(name string) (string, error) {
	cfg := s.Render
	if !cfg.EnableMultipleTranslations {
		return "", nil
	}
	if name == "" {
		return cfg.MainTranslation(), nil
	}
	root, ok := cfg.FindTranslation(name)
	if !ok {
		return "", errors.NewValidation("translation", name, "not a configured translation")
	}
	return root, nil
}

var lineBreak = regexp.MustCompile(`\r?\n|\r`)

// ParseTranslationPaths splits one translation path per line and makes
// every path end in "/". Blank lines are dropped.
func ParseTranslationPaths(s string) []string {
	return normalizePaths(lineBreak.Split(s, -1))
}

func normalizePaths(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.HasSuffix(p, "/") {
			p += "/"
		}
		out = append(out, p)
	}
	return out
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
