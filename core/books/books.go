// Package books normalizes book names in typed references: capitalization
// and expansion of common English abbreviations.
package books

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Capitalize lowercases s and uppercases the first character that is not
// whitespace, a digit, or one of ".,#-". "gen 1,1" becomes "Gen 1,1" and
// "  3JOHN" becomes "  3John".
func Capitalize(s string) string {
	s = strings.ToLower(s)
	for i, r := range s {
		if skipOnCapitalize(r) {
			continue
		}
		upper := string(unicode.ToUpper(r))
		return s[:i] + upper + s[i+utf8.RuneLen(r):]
	}
	return s
}

func skipOnCapitalize(r rune) bool {
	if unicode.IsSpace(r) || isASCIIDigit(r) {
		return true
	}
	switch r {
	case '.', ',', '#', '-':
		return true
	}
	return false
}

// ExpandAbbreviation replaces a leading book abbreviation with the full
// book name: "gen 1,1" becomes "Genesis 1,1". The abbreviation must be
// followed by whitespace or a digit, so "genxyz 1" is left alone. Matching
// is case-insensitive and the remainder of s is kept verbatim.
func ExpandAbbreviation(s string) string {
	for _, b := range abbreviations {
		n := len(b.abbrev)
		if len(s) <= n || !strings.EqualFold(s[:n], b.abbrev) {
			continue
		}
		next, _ := utf8.DecodeRuneInString(s[n:])
		if unicode.IsSpace(next) || isASCIIDigit(next) {
			return b.name + s[n:]
		}
	}
	return s
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
