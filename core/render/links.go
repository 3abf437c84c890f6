package render

import (
	"strconv"
	"strings"

	"github.com/FocuswithJustin/versequote/core/books"
	"github.com/FocuswithJustin/versequote/core/errors"
	"github.com/FocuswithJustin/versequote/core/ref"
	"github.com/FocuswithJustin/versequote/core/vault"
)

// Links renders links without quoted text. A chapter range such as
// "Gen 1-3" yields one link per chapter; anything else is read as a verse
// or verse range and yields one link per verse. With newLines every link
// is followed by a line break. Failures are reported to the Notifier.
func (r *Renderer) Links(raw string, cfg Config, flavor LinkFlavor, newLines bool) (string, error) {
	var out string
	var err error
	if ref.IsChapterRange(raw) {
		out, err = chapterLinks(raw, newLines)
	} else {
		out, err = r.verseLinks(raw, cfg, flavor, newLines)
	}
	if err != nil {
		r.warn(err)
		return "", err
	}
	return out, nil
}

func chapterLinks(raw string, newLines bool) (string, error) {
	book, err := ref.ParseBook(raw)
	if err != nil {
		return "", err
	}
	if book.FirstChapter > book.LastChapter {
		return "", errors.NewRange("chapter", book.FirstChapter, book.LastChapter, errors.RangeInverted)
	}

	var b strings.Builder
	for i := book.FirstChapter; i <= book.LastChapter; i++ {
		b.WriteString("[[" + book.Book + " " + strconv.Itoa(i) + "]]")
		if newLines {
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

func (r *Renderer) verseLinks(raw string, cfg Config, flavor LinkFlavor, newLines bool) (string, error) {
	parsed, err := ref.ParseVerse(raw)
	if err != nil {
		return "", err
	}

	bookAndChapter := parsed.BookAndChapter
	if cfg.CapitalizeBookNames {
		bookAndChapter = books.Capitalize(bookAndChapter)
	}
	if cfg.VerifyFiles {
		if _, err := vault.Resolve(r.store, bookAndChapter, ""); err != nil {
			return "", err
		}
	}
	if parsed.BeginVerse > parsed.EndVerse {
		return "", errors.NewRange("verse", parsed.BeginVerse, parsed.EndVerse, errors.RangeInverted)
	}

	target := bookAndChapter + cfg.LinkSeparator + cfg.VersePrefix
	var b strings.Builder
	for i := parsed.BeginVerse; i <= parsed.EndVerse; i++ {
		first := i == parsed.BeginVerse
		if first && flavor == Embedded {
			b.WriteString("!")
		}
		b.WriteString("[[" + target + strconv.Itoa(i))
		if flavor == Invisible {
			b.WriteString("|")
			if first {
				b.WriteString(books.ExpandAbbreviation(raw))
			}
		}
		b.WriteString("]]")
		if newLines {
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}
