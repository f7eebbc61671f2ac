package layout

import "strings"

// Justify redistributes inter-word space so the line's rendered width
// reaches targetWidth. Extra space is added in whole space-character
// units: floor(extra/spaceWidth) units split across the gaps as evenly
// as possible, with the leftover units going one each to the leading
// gaps. Sub-space distribution is meaningless without glyph-level
// control over a proportional font, so integer spaces are the unit.
//
// The result contains exactly the original words in their original
// order, and is never narrower than the single-space joining.
func Justify(words []string, variant FontVariant, size, targetWidth float64, m Measurer, s Shaper) string {
	if len(words) <= 1 {
		return strings.Join(words, " ")
	}

	wordsWidth := 0.0
	for _, w := range words {
		wordsWidth += m.TextWidth(s.Shape(w), variant, size)
	}
	spaceWidth := m.TextWidth(" ", variant, size)
	gaps := len(words) - 1
	normalSpaces := float64(gaps) * spaceWidth

	extra := targetWidth - wordsWidth - normalSpaces
	if extra <= 0 || spaceWidth <= 0 {
		return strings.Join(words, " ")
	}

	extraUnits := int(extra / spaceWidth)
	perGap := extraUnits / gaps
	remainder := extraUnits % gaps

	var b strings.Builder
	b.WriteString(words[0])
	for i := 1; i < len(words); i++ {
		n := 1 + perGap
		if i <= remainder {
			n++
		}
		b.WriteString(strings.Repeat(" ", n))
		b.WriteString(words[i])
	}
	return b.String()
}
