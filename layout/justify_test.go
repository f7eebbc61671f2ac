package layout

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var spaceRuns = regexp.MustCompile(` +`)

func TestJustifyDistributesEvenGaps(t *testing.T) {
	// Words 20 px each at size 100, space 10 px, target 200:
	// extra = 200-60-20 = 120 px = 12 space units over 2 gaps.
	m := stubMeasurer{}
	got := Justify([]string{"aa", "bb", "cc"}, FontBody, 100, 200, m, identityShaper{})
	assert.Equal(t, "aa"+strings.Repeat(" ", 7)+"bb"+strings.Repeat(" ", 7)+"cc", got)
	assert.InDelta(t, 200, m.TextWidth(got, FontBody, 100), 1e-9)
}

func TestJustifyRemainderGoesToLeadingGaps(t *testing.T) {
	// target 210 → 13 extra units over 2 gaps: first gap gets 8, second 7.
	got := Justify([]string{"aa", "bb", "cc"}, FontBody, 100, 210, stubMeasurer{}, identityShaper{})
	assert.Equal(t, "aa"+strings.Repeat(" ", 8)+"bb"+strings.Repeat(" ", 7)+"cc", got)
}

func TestJustifyNeverCompresses(t *testing.T) {
	// Natural width 80 px exceeds the 50 px target: plain join wins.
	got := Justify([]string{"aaa", "bbb"}, FontBody, 100, 50, stubMeasurer{}, identityShaper{})
	assert.Equal(t, "aaa bbb", got)
}

func TestJustifySingleWordUntouched(t *testing.T) {
	got := Justify([]string{"solo"}, FontBody, 100, 500, stubMeasurer{}, identityShaper{})
	assert.Equal(t, "solo", got)
}

// Collapsing the extra spaces recovers the single-space joining; the
// words themselves are never altered or reordered.
func TestJustifyPreservesWords(t *testing.T) {
	words := []string{"one", "two", "three", "four"}
	for _, target := range []float64{100, 250, 333, 1000} {
		got := Justify(words, FontBody, 100, target, stubMeasurer{}, identityShaper{})
		assert.Equal(t, strings.Join(words, " "), spaceRuns.ReplaceAllString(got, " "), "target=%g", target)
	}
}
