package vault

import (
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	lineBreakRe = regexp.MustCompile(`\r?\n`)
	// A heading with no text, such as "#" or "## ##". Goldmark gives these
	// no segment, so their line is found by scanning forward instead.
	emptyHeadingRe = regexp.MustCompile(`(?:^|[ \t>])#{1,6}(?:[ \t]+#*)?[ \t]*$`)

	markdown = goldmark.New()
)

// SplitLines splits text on LF or CRLF line endings.
func SplitLines(text string) []string {
	return lineBreakRe.Split(text, -1)
}

// lineIndex maps byte offsets of a document to 0-based line numbers.
type lineIndex []int

func newLineIndex(src []byte) lineIndex {
	idx := lineIndex{0}
	for i, c := range src {
		if c == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

// line returns the line holding offset.
func (idx lineIndex) line(offset int) int {
	return sort.SearchInts(idx, offset+1) - 1
}

// frontMatterEnd returns the first line after a YAML front matter block
// opening on line 0, or 0 when the document has none. An unterminated
// block is body text.
func frontMatterEnd(lines []string) int {
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != "---" {
		return 0
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == "---" {
			return i + 1
		}
	}
	return 0
}

// ScanHeadings returns the ATX and setext headings of a markdown document
// in document order. Headings inside code blocks and YAML front matter are
// ignored. Line is the 0-based line the heading text starts on.
func ScanHeadings(doc string) []Heading {
	src := []byte(doc)
	idx := newLineIndex(src)
	lines := SplitLines(doc)
	headings := make([]Heading, 0, len(lines)/2)

	body := 0
	if end := frontMatterEnd(lines); end > 0 {
		if end >= len(idx) {
			return headings
		}
		body = idx[end]
	}
	source := src[body:]
	root := markdown.Parser().Parse(text.NewReader(source))

	// cursor is the offset just past the last block content seen.
	cursor := body
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		segs := n.Lines()
		h, isHeading := n.(*ast.Heading)

		var line int
		if isHeading && segs.Len() == 0 {
			line = emptyHeadingLine(lines, idx, cursor)
			if line+1 < len(idx) {
				cursor = idx[line+1]
			} else {
				cursor = len(src)
			}
		} else if segs.Len() > 0 {
			line = idx.line(body + segs.At(0).Start)
			if stop := body + segs.At(segs.Len()-1).Stop; stop > cursor {
				cursor = stop
			}
		}

		if !isHeading {
			return ast.WalkContinue, nil
		}
		headings = append(headings, Heading{
			Text:  headingText(segs, source),
			Line:  line,
			Level: h.Level,
		})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// emptyHeadingLine finds the line of a heading without text, the first
// matching line after the content ending at cursor.
func emptyHeadingLine(lines []string, idx lineIndex, cursor int) int {
	first := 0
	if cursor > 0 {
		first = idx.line(cursor-1) + 1
	}
	for i := first; i < len(lines); i++ {
		if emptyHeadingRe.MatchString(lines[i]) {
			return i
		}
	}
	return min(first, len(lines)-1)
}

func headingText(segs *text.Segments, source []byte) string {
	parts := make([]string, 0, segs.Len())
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		parts = append(parts, strings.TrimSpace(string(seg.Value(source))))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
