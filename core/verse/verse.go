// Package verse reconstructs the text of a verse from a chapter document.
//
// Every verse is introduced by a heading. Heading 0 is the chapter title,
// so verse n is the text under headings[n], up to the next heading or the
// first blank line after some text.
package verse

import (
	"regexp"
	"strings"

	"github.com/FocuswithJustin/versequote/core/errors"
	"github.com/FocuswithJustin/versequote/core/vault"
)

// FilterHeadings keeps the headings at level. Level 0 keeps all of them.
func FilterHeadings(headings []vault.Heading, level int) []vault.Heading {
	if level == 0 {
		return headings
	}
	filtered := make([]vault.Heading, 0, len(headings))
	for _, h := range headings {
		if h.Level == level {
			filtered = append(filtered, h)
		}
	}
	return filtered
}

// ExtractText returns the text under headings[index]. Consecutive
// non-empty lines are joined with a space, or with a newline followed by
// prefix when keepNewlines is set.
func ExtractText(index int, headings []vault.Heading, lines []string, keepNewlines bool, prefix string) (string, error) {
	if index < 0 || index >= len(headings) {
		return "", &errors.VerseOutOfRangeError{Verse: index, Headings: len(headings)}
	}
	headingLine := headings[index].Line
	if headingLine+1 >= len(lines) {
		return "", &errors.MalformedDocumentError{Line: headingLine, Lines: len(lines)}
	}

	separator := " "
	if keepNewlines {
		separator = "\n" + prefix
	}

	var b strings.Builder
	first := true
	for i := headingLine + 1; i < len(lines); i++ {
		line := lines[i]
		if strings.HasPrefix(line, "#") || (line == "" && !first) {
			break
		}
		if line == "" {
			continue
		}
		if !first {
			b.WriteString(separator)
		}
		first = false
		b.WriteString(line)
	}
	return b.String(), nil
}

// StripComments removes every span from start to the nearest following
// end, across lines. Text is returned unchanged when either delimiter is
// empty.
func StripComments(text, start, end string) string {
	if start == "" || end == "" {
		return text
	}
	re := regexp.MustCompile(`(?s)` + regexp.QuoteMeta(start) + `.*?` + regexp.QuoteMeta(end))
	return re.ReplaceAllString(text, "")
}
