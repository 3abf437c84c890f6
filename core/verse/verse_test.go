package verse

import (
	"errors"
	"reflect"
	"testing"

	verrors "github.com/FocuswithJustin/versequote/core/errors"
	"github.com/FocuswithJustin/versequote/core/vault"
)

func headingsAt(lines ...int) []vault.Heading {
	headings := make([]vault.Heading, len(lines))
	for i, l := range lines {
		headings[i] = vault.Heading{Line: l, Level: 6}
	}
	return headings
}

func chapterLines() []string {
	lines := make([]string, 22)
	lines[0] = "# Gen 1"
	lines[5] = "###### 1"
	lines[6] = "In the beginning"
	lines[9] = "###### 2"
	lines[10] = "And the earth was"
	lines[11] = "without form"
	lines[13] = "stray text"
	lines[20] = "###### 3"
	lines[21] = "And God said"
	return lines
}

func TestExtractText(t *testing.T) {
	headings := headingsAt(0, 5, 9, 20)
	lines := chapterLines()

	tests := []struct {
		name         string
		index        int
		keepNewlines bool
		prefix       string
		want         string
	}{
		{"joined with space", 2, false, "> ", "And the earth was without form"},
		{"joined with newline and prefix", 2, true, "> ", "And the earth was\n> without form"},
		{"single line verse", 1, false, "", "In the beginning"},
		{"last verse runs to end of lines", 3, false, "", "And God said"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractText(tt.index, headings, lines, tt.keepNewlines, tt.prefix)
			if err != nil {
				t.Fatalf("ExtractText() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractTextSkipsLeadingBlankLines(t *testing.T) {
	lines := []string{"# Gen 1", "###### 1", "", "", "first", "second", "", "after"}
	got, err := ExtractText(1, headingsAt(0, 1), lines, false, "")
	if err != nil {
		t.Fatalf("ExtractText() unexpected error: %v", err)
	}
	if got != "first second" {
		t.Errorf("ExtractText() = %q, want %q", got, "first second")
	}
}

func TestExtractTextStopsAtHeading(t *testing.T) {
	lines := []string{"# Gen 1", "###### 1", "text", "#### note", "more"}
	got, err := ExtractText(1, headingsAt(0, 1), lines, false, "")
	if err != nil {
		t.Fatalf("ExtractText() unexpected error: %v", err)
	}
	if got != "text" {
		t.Errorf("ExtractText() = %q, want %q", got, "text")
	}
}

func TestExtractTextHeadingWithoutContent(t *testing.T) {
	lines := []string{"# Gen 1", "###### 1", "###### 2"}
	got, err := ExtractText(1, headingsAt(0, 1, 2), lines, false, "")
	if err != nil {
		t.Fatalf("ExtractText() unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("ExtractText() = %q, want empty", got)
	}
}

func TestExtractTextErrors(t *testing.T) {
	lines := []string{"# Gen 1", "###### 1"}
	headings := headingsAt(0, 1)

	tests := []struct {
		name  string
		index int
		want  error
	}{
		{"index past headings", 2, verrors.ErrVerseOutOfRange},
		{"negative index", -1, verrors.ErrVerseOutOfRange},
		{"heading on last line", 1, verrors.ErrMalformedDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractText(tt.index, headings, lines, false, "")
			if !errors.Is(err, tt.want) {
				t.Errorf("ExtractText(%d) error = %v, want %v", tt.index, err, tt.want)
			}
		})
	}
}

func TestFilterHeadings(t *testing.T) {
	headings := []vault.Heading{
		{Text: "Gen 1", Line: 0, Level: 1},
		{Text: "Intro", Line: 2, Level: 2},
		{Text: "1", Line: 4, Level: 6},
		{Text: "2", Line: 6, Level: 6},
	}

	if got := FilterHeadings(headings, 0); !reflect.DeepEqual(got, headings) {
		t.Errorf("FilterHeadings(0) = %+v, want all headings", got)
	}

	got := FilterHeadings(headings, 6)
	if len(got) != 2 || got[0].Text != "1" || got[1].Text != "2" {
		t.Errorf("FilterHeadings(6) = %+v", got)
	}

	if got := FilterHeadings(headings, 3); len(got) != 0 {
		t.Errorf("FilterHeadings(3) = %+v, want none", got)
	}
}

func TestStripComments(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		start, end string
		want       string
	}{
		{"inline", "abc /*skip*/ def", "/*", "*/", "abc  def"},
		{"non-greedy", "a %%x%% b %%y%% c", "%%", "%%", "a  b  c"},
		{"multi-line", "a <!--x\ny--> b", "<!--", "-->", "a  b"},
		{"regex metacharacters", "a (.) b (.) c", "(", ")", "a  b  c"},
		{"unterminated", "abc /*skip", "/*", "*/", "abc /*skip"},
		{"empty start", "abc /*skip*/", "", "*/", "abc /*skip*/"},
		{"empty end", "abc /*skip*/", "/*", "", "abc /*skip*/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripComments(tt.text, tt.start, tt.end); got != tt.want {
				t.Errorf("StripComments(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
