// Package directive parses the optional @card control line that power
// users can put at the top of a submission to override rendering
// settings for a single card.
//
//	@card size 96 pages 1 bg image_2.jpg
//
// The directive occupies the first line only; the rest of the message is
// returned untouched.
package directive

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	cardLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t]+`},
		{Name: "Card", Pattern: `@card`},
		{Name: "Number", Pattern: `\d+`},
		{Name: "Path", Pattern: `[A-Za-z0-9_./\-]+`},
	})

	cardParser = participle.MustBuild[card](
		participle.Lexer(cardLexer),
		participle.Elide("Whitespace"),
	)
)

type card struct {
	Fields []*field `parser:"'@card' @@*"`
}

type field struct {
	Size       *int    `parser:"  'size' @Number"`
	Pages      *int    `parser:"| 'pages' @Number"`
	Background *string `parser:"| 'bg' @Path"`
}

// Directive holds the per-card overrides. Zero values mean "not set".
type Directive struct {
	// Size pins the font size instead of letting the sizer search.
	Size int
	// Pages overrides the page cap.
	Pages int
	// Background names an alternative background image, resolved
	// relative to the configured image directory.
	Background string
}

// Parse inspects the first line of message. When it starts with @card it
// is parsed as a directive and stripped from the returned text;
// otherwise Parse returns (nil, message, nil). A malformed @card line is
// an error so the author gets feedback instead of a card with the
// directive rendered into it.
func Parse(message string) (*Directive, string, error) {
	first, rest, found := strings.Cut(message, "\n")
	if !strings.HasPrefix(strings.TrimSpace(first), "@card") {
		return nil, message, nil
	}
	if !found {
		rest = ""
	}

	parsed, err := cardParser.ParseString("", strings.TrimSpace(first))
	if err != nil {
		return nil, message, fmt.Errorf("directive: %w", err)
	}

	d := &Directive{}
	for _, f := range parsed.Fields {
		switch {
		case f.Size != nil:
			d.Size = *f.Size
		case f.Pages != nil:
			d.Pages = *f.Pages
		case f.Background != nil:
			d.Background = *f.Background
		}
	}
	if err := d.validate(); err != nil {
		return nil, message, err
	}
	return d, rest, nil
}

func (d *Directive) validate() error {
	if d.Size != 0 && (d.Size < 8 || d.Size > 300) {
		return fmt.Errorf("directive: size %d out of range", d.Size)
	}
	if d.Pages < 0 || d.Pages > 10 {
		return fmt.Errorf("directive: pages %d out of range", d.Pages)
	}
	if strings.Contains(d.Background, "..") {
		return fmt.Errorf("directive: background path %q may not traverse directories", d.Background)
	}
	return nil
}
