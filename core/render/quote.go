package render

import (
	"context"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/versequote/core/books"
	"github.com/FocuswithJustin/versequote/core/errors"
	"github.com/FocuswithJustin/versequote/core/ref"
	"github.com/FocuswithJustin/versequote/core/vault"
	"github.com/FocuswithJustin/versequote/core/verse"
)

// chapter is a resolved chapter document ready for rendering.
type chapter struct {
	file     string // name the document was resolved under
	display  string // human-readable book and chapter
	path     string
	headings []vault.Heading
	lines    []string
}

// span is a verse range after offset and clamping. begin and last index
// headings; offset converts them back to verse numbers.
type span struct {
	begin, last, offset int
}

func (s span) number(index int) int { return index - s.offset }

// Quote renders a link to the verses raw refers to followed by their
// text, quoted from the chapter found under translationRoot. With
// linkOnly the text, prefix and postfix are left out. When verbose is
// set, failures are also reported to the Notifier.
func (r *Renderer) Quote(ctx context.Context, raw string, cfg Config, translationRoot string, linkOnly, verbose bool) (string, error) {
	out, err := r.quote(ctx, raw, cfg, translationRoot, linkOnly)
	if err != nil {
		if verbose {
			r.warn(err)
		}
		return "", err
	}
	return out, nil
}

func (r *Renderer) quote(ctx context.Context, raw string, cfg Config, translationRoot string, linkOnly bool) (string, error) {
	parsed, err := ref.ParseVerse(raw)
	if err != nil {
		return "", err
	}
	if parsed.BeginVerse > parsed.EndVerse {
		return "", errors.NewRange("verse", parsed.BeginVerse, parsed.EndVerse, errors.RangeInverted)
	}

	ch, err := r.loadChapter(ctx, books.Capitalize(parsed.BookAndChapter), translationRoot, cfg.VerseHeadingLevel)
	if err != nil {
		return "", err
	}

	sp, err := clampSpan(parsed, cfg.VerseOffset, len(ch.headings))
	if err != nil {
		return "", err
	}

	folder := ""
	if cfg.EnableMultipleTranslations {
		root := translationRoot
		if cfg.TranslationLinking == LinkMain {
			root = cfg.MainTranslation()
		}
		if folder, err = vault.FolderIn(r.store, ch.file, root); err != nil {
			return "", err
		}
	}

	var b strings.Builder
	r.writeVisibleLink(&b, ch, sp, cfg, folder, linkOnly)

	if !linkOnly {
		if err := r.writeVerses(&b, ch, sp, cfg); err != nil {
			return "", err
		}
	}

	if err := r.writeInvisibleLinks(&b, ch, sp, cfg, translationRoot, linkOnly); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (r *Renderer) loadChapter(ctx context.Context, name, translationRoot string, headingLevel int) (*chapter, error) {
	res, err := vault.Resolve(r.store, name, translationRoot)
	if err != nil {
		return nil, err
	}

	text, err := r.store.ReadFullText(ctx, res.Document)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", res.Document.Path)
	}
	headings, err := r.store.Headings(ctx, res.Document)
	if err != nil {
		return nil, errors.Wrapf(err, "headings of %s", res.Document.Path)
	}

	return &chapter{
		file:     res.Name,
		display:  ref.ToDisplayName(res.Document.Basename()),
		path:     res.Document.Path,
		headings: verse.FilterHeadings(headings, headingLevel),
		lines:    vault.SplitLines(text),
	}, nil
}

// clampSpan applies offset to the parsed verses and lowers the end to the
// last heading of the chapter.
func clampSpan(parsed ref.VerseReference, offset, headings int) (span, error) {
	begin := parsed.BeginVerse + offset
	last := min(parsed.EndVerse+offset, headings-1)
	if begin > last {
		return span{}, errors.NewRange("verse", parsed.BeginVerse, last-offset, errors.RangeExceedsChapter)
	}
	if begin < 0 {
		return span{}, &errors.VerseOutOfRangeError{Verse: begin, Headings: headings}
	}
	return span{begin: begin, last: last, offset: offset}, nil
}

func (r *Renderer) writeVisibleLink(b *strings.Builder, ch *chapter, sp span, cfg Config, folder string, linkOnly bool) {
	postfix := ""
	if !linkOnly {
		b.WriteString(cfg.Prefix)
		postfix = " "
		if cfg.Postfix != "" {
			postfix = strings.ReplaceAll(cfg.Postfix, `\n`, "\n")
		}
		if cfg.NewLines {
			b.WriteString(cfg.FirstLinePrefix)
		}
	}

	target := linkTarget(folder, ch.file)
	beginNumber := strconv.Itoa(sp.number(sp.begin))
	lastNumber := strconv.Itoa(sp.number(sp.last))

	switch {
	case sp.begin == sp.last:
		// [[Gen 1#1|Gen 1.1]]
		writeLink(b, target, ch.headings[sp.begin].Text, ch.display+cfg.OneVerseNotation+beginNumber)
	case cfg.LinkEndVerse:
		// [[Gen 1#1|Gen 1,1-]][[Gen 1#3|3]]
		writeLink(b, target, ch.headings[sp.begin].Text, ch.display+cfg.MultipleVersesNotation+beginNumber+"-")
		writeLink(b, target, ch.headings[sp.last].Text, lastNumber)
	default:
		// [[Gen 1#1|Gen 1,1-3]]
		writeLink(b, target, ch.headings[sp.begin].Text, ch.display+cfg.MultipleVersesNotation+beginNumber+"-"+lastNumber)
	}
	b.WriteString(postfix)
}

func writeLink(b *strings.Builder, target, heading, alias string) {
	b.WriteString("[[")
	b.WriteString(target)
	b.WriteString("#")
	b.WriteString(heading)
	b.WriteString("|")
	b.WriteString(alias)
	b.WriteString("]]")
}

func (r *Renderer) writeVerses(b *strings.Builder, ch *chapter, sp span, cfg Config) error {
	tmpl, err := ParseTemplate(cfg.EachVersePrefix)
	if err != nil {
		return errors.NewValidation("eachVersePrefix", cfg.EachVersePrefix, err.Error())
	}

	for i := sp.begin; i <= sp.last; i++ {
		text, err := verse.ExtractText(i, ch.headings, ch.lines, cfg.NewLines, cfg.Prefix)
		if err != nil {
			var docErr *errors.MalformedDocumentError
			if errors.As(err, &docErr) {
				docErr.Document = ch.path
			}
			return err
		}
		text = verse.StripComments(text, cfg.CommentStart, cfg.CommentEnd)
		versePrefix := tmpl.Expand(sp.number(i), ch.file)

		if cfg.NewLines {
			b.WriteString("\n" + cfg.Prefix + versePrefix + text)
			continue
		}
		b.WriteString(versePrefix + text)
		if cfg.InsertSpace {
			b.WriteString(" ")
		}
	}
	return nil
}

func (r *Renderer) writeInvisibleLinks(b *strings.Builder, ch *chapter, sp span, cfg Config, translationRoot string, linkOnly bool) error {
	if !cfg.UseInvisibleLinks {
		return nil
	}

	oneTranslation := !cfg.EnableMultipleTranslations ||
		cfg.TranslationLinking == LinkMain ||
		cfg.TranslationLinking == LinkUsed
	alreadyLinked := sp.begin == sp.last || (cfg.LinkEndVerse && sp.begin == sp.last-1)
	if alreadyLinked && oneTranslation {
		return nil
	}

	last := sp.last
	if cfg.LinkEndVerse {
		last--
	}
	if sp.begin+1 > last {
		return nil
	}

	targets := []string{ch.file}
	if cfg.EnableMultipleTranslations {
		folders, err := r.linkedFolders(ch.file, cfg, translationRoot)
		if err != nil {
			return err
		}
		targets = targets[:0]
		for _, folder := range folders {
			targets = append(targets, linkTarget(folder, ch.file))
		}
	}

	if cfg.NewLines && !linkOnly {
		b.WriteString("\n" + cfg.Prefix)
	}
	for i := sp.begin + 1; i <= last; i++ {
		for _, target := range targets {
			writeLink(b, target, ch.headings[i].Text, "")
		}
	}
	return nil
}

// linkedFolders returns the folders of file in every translation the
// linking scope asks for.
func (r *Renderer) linkedFolders(file string, cfg Config, translationRoot string) ([]string, error) {
	var roots []string
	switch cfg.TranslationLinking {
	case LinkAll:
		roots = cfg.TranslationPaths
	case LinkUsed:
		roots = []string{translationRoot}
	case LinkUsedAndMain:
		roots = []string{translationRoot}
		if main := cfg.MainTranslation(); translationRoot != main {
			roots = append(roots, main)
		}
	case LinkMain:
		roots = []string{cfg.MainTranslation()}
	}

	folders := make([]string, 0, len(roots))
	for _, root := range roots {
		folder, err := vault.FolderIn(r.store, file, root)
		if err != nil {
			return nil, err
		}
		folders = append(folders, folder)
	}
	return folders, nil
}
