package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// prefixGrammar is the grammar of the each-verse prefix.
// Example: "**{n}** " or "[[{f}]] {n}. "
//
//nolint:govet // participle grammar tags are not standard struct tags
type prefixGrammar struct {
	Parts []*prefixPart `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type prefixPart struct {
	Placeholder *string `  @Placeholder`
	Text        *string `| @Text`
}

// prefixLexer splits a template into placeholders and literal text.
// A '{' that does not start a placeholder is literal.
var prefixLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Placeholder", Pattern: `\{[nf]\}`},
	{Name: "Text", Pattern: `[^{]+|\{`},
})

var prefixParser = participle.MustBuild[prefixGrammar](
	participle.Lexer(prefixLexer),
)

// Template is a parsed each-verse prefix.
type Template struct {
	parts []*prefixPart
}

// ParseTemplate parses an each-verse prefix with {n} and {f} placeholders.
func ParseTemplate(s string) (*Template, error) {
	if s == "" {
		return &Template{}, nil
	}
	parsed, err := prefixParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("invalid verse prefix %q: %w", s, err)
	}
	return &Template{parts: parsed.Parts}, nil
}

// Expand substitutes {n} with verse and {f} with file.
func (t *Template) Expand(verse int, file string) string {
	var b strings.Builder
	for _, p := range t.parts {
		switch {
		case p.Text != nil:
			b.WriteString(*p.Text)
		case p.Placeholder != nil && *p.Placeholder == "{n}":
			b.WriteString(strconv.Itoa(verse))
		case p.Placeholder != nil:
			b.WriteString(file)
		}
	}
	return b.String()
}
