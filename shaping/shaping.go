// Package shaping converts logical Persian/Arabic text into display
// order so the rendering backend can measure and draw it left to right.
package shaping

import (
	"strings"

	"golang.org/x/text/unicode/bidi"
)

// IsRTL reports whether text contains right-to-left script. It checks
// the Hebrew/Arabic blocks plus the Arabic presentation forms.
func IsRTL(text string) bool {
	for _, r := range text {
		if (r >= 0x0590 && r <= 0x06FF) || (r >= 0xFB50 && r <= 0xFDFF) || (r >= 0xFE70 && r <= 0xFEFF) {
			return true
		}
	}
	return false
}

// Bidi reorders logical text into visual order with the Unicode
// bidirectional algorithm. It is the default shaper; left-to-right text
// passes through unchanged, which also makes repeated shaping of already
// shaped fragments safe for measurement.
type Bidi struct{}

func (Bidi) Shape(raw string) string {
	if raw == "" || !IsRTL(raw) {
		return raw
	}
	var p bidi.Paragraph
	if _, err := p.SetString(raw, bidi.DefaultDirection(bidi.RightToLeft)); err != nil {
		return raw
	}
	ordering, err := p.Order()
	if err != nil {
		return raw
	}
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		if run.Direction() == bidi.RightToLeft {
			b.WriteString(bidi.ReverseString(run.String()))
		} else {
			b.WriteString(run.String())
		}
	}
	return b.String()
}

// Sentence approximates right-to-left reading order by reversing the
// order of '.'-delimited sentences. This is a heuristic, not a
// correctness guarantee: it breaks on text without period-delimited
// sentences and on nested punctuation (abbreviations, decimals), where
// the behavior is undefined. A leading whitespace run is preserved.
// Kept behind the same interface as Bidi so either can back the engine.
type Sentence struct{}

func (Sentence) Shape(raw string) string {
	lead := raw[:len(raw)-len(strings.TrimLeft(raw, " \t"))]
	rest := raw[len(lead):]
	if !strings.Contains(rest, ".") {
		return raw
	}
	parts := strings.Split(rest, ".")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			segments = append(segments, p)
		}
	}
	if len(segments) == 0 {
		return raw
	}
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return lead + strings.Join(segments, ". ")
}
