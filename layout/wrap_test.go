package layout

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubMeasurer is a deterministic monospace measurer for tests: every
// rune is size/10 px wide and a line slot is 1.5×size. It keeps the
// layout tests independent of any real font backend.
type stubMeasurer struct{}

func (stubMeasurer) TextWidth(shaped string, _ FontVariant, size float64) float64 {
	return float64(utf8.RuneCountInString(shaped)) * size * 0.1
}

func (stubMeasurer) LineHeight(_ FontVariant, size float64) float64 {
	return size * 1.5
}

// identityShaper passes text through unchanged.
type identityShaper struct{}

func (identityShaper) Shape(raw string) string { return raw }

func testOptions() Options {
	return Options{Measurer: stubMeasurer{}, Shaper: identityShaper{}}
}

func TestWrapSingleLineFits(t *testing.T) {
	// "one two three" is 13 runes = 130 px at size 100.
	lines := wrapParagraph("one two three", LineBody, 100, 200, stubMeasurer{}, identityShaper{})
	require.Len(t, lines, 1)
	assert.Equal(t, []string{"one", "two", "three"}, lines[0].Words)
	assert.True(t, lines[0].LastInParagraph)
	assert.Equal(t, LineBody, lines[0].Kind)
}

func TestWrapOverflowStartsNewLine(t *testing.T) {
	// "wordA wordB" = 110 px fits in 120; adding " wordC" overflows.
	lines := wrapParagraph("wordA wordB wordC", LineBody, 100, 120, stubMeasurer{}, identityShaper{})
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"wordA", "wordB"}, lines[0].Words)
	assert.False(t, lines[0].LastInParagraph)
	assert.Equal(t, []string{"wordC"}, lines[1].Words)
	assert.True(t, lines[1].LastInParagraph)
}

func TestWrapSingleWordWiderThanLine(t *testing.T) {
	word := strings.Repeat("x", 30) // 300 px, limit 100
	lines := wrapParagraph(word, LineBody, 100, 100, stubMeasurer{}, identityShaper{})
	require.Len(t, lines, 1)
	assert.Equal(t, []string{word}, lines[0].Words)
}

func TestWrapBlankLineBetweenParagraphs(t *testing.T) {
	lines := wrapBody("para one\n\npara two", 100, 1000, stubMeasurer{}, identityShaper{})
	require.Len(t, lines, 3)
	assert.Equal(t, LineBody, lines[0].Kind)
	assert.Equal(t, LineBlank, lines[1].Kind)
	assert.Equal(t, LineBody, lines[2].Kind)
}

// Wrapping never drops, duplicates, or reorders words.
func TestWrapPreservesWordOrder(t *testing.T) {
	body := "the quick brown fox jumps over the lazy dog again and again until done"
	for _, maxWidth := range []float64{60, 100, 150, 400, 2000} {
		lines := wrapBody(body, 100, maxWidth, stubMeasurer{}, identityShaper{})
		var got []string
		for _, ln := range lines {
			got = append(got, ln.Words...)
		}
		assert.Equal(t, strings.Fields(body), got, "maxWidth=%g", maxWidth)
	}
}

// Every accepted multi-word line measures within the limit.
func TestWrapRespectsWidthLimit(t *testing.T) {
	m := stubMeasurer{}
	body := "alpha beta gamma delta epsilon zeta eta theta iota kappa lambda mu"
	lines := wrapBody(body, 100, 250, m, identityShaper{})
	for i, ln := range lines {
		if len(ln.Words) < 2 {
			continue
		}
		w := m.TextWidth(ln.Text(), FontBody, 100)
		assert.LessOrEqual(t, w, 250.0, "line %d", i)
	}
}
