package ref

import (
	"regexp"
	"strings"
)

var (
	// "Gen 1" split into book and chapter for the filename convention.
	bookAndChapterRe = regexp.MustCompile(`^([^,:#]+)\s(\d+)\s*$`)
	// Filename convention used by Bible study kits, e.g. "Gen-01", "Ps-119".
	// Text after the chapter number, such as "Gen-01 (KJV)", is ignored.
	conventionRe = regexp.MustCompile(`^([A-Za-z\x{00C0}-\x{017E}0-9 _]+)-(\d{2,3})`)
)

// ToFilenameConvention converts "Gen 1" to "Gen-01". Chapters with a
// single digit are zero-padded to two. It reports false when name does
// not have the book-and-chapter shape.
func ToFilenameConvention(name string) (string, bool) {
	m := bookAndChapterRe.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}

	book, chapter := m[1], m[2]
	if len(chapter) == 1 {
		chapter = "0" + chapter
	}
	return book + "-" + chapter, true
}

// ToDisplayName converts a document base name to the form used in rendered
// quotations: "Gen-01" becomes "Gen 1". One leading zero is stripped, and
// anything after the chapter number is dropped. Names outside the
// convention are returned unchanged.
func ToDisplayName(basename string) string {
	m := conventionRe.FindStringSubmatch(basename)
	if m == nil {
		return basename
	}

	book, chapter := m[1], m[2]
	chapter = strings.TrimPrefix(chapter, "0")
	return book + " " + chapter
}
