package layout

import "strings"

// wrapParagraph splits one paragraph into width-bounded lines using
// greedy accumulation: each next word is tentatively appended, the joined
// line is shaped and measured, and the line is closed when the tentative
// width exceeds maxWidth. The final line of a paragraph is flagged
// LastInParagraph; that flag alone decides justified vs edge-aligned
// placement downstream.
//
// An empty paragraph yields a single blank line so vertical spacing of
// blank source lines survives wrapping. A single word wider than
// maxWidth is still placed alone on its own line; there is no sub-word
// breaking.
func wrapParagraph(paragraph string, kind LineKind, size, maxWidth float64, m Measurer, s Shaper) []Line {
	if strings.TrimSpace(paragraph) == "" {
		return []Line{{Kind: LineBlank, LastInParagraph: true}}
	}

	variant := FontBody
	if kind == LineTitle {
		variant = FontTitle
	}

	var words []string
	for _, w := range strings.Split(paragraph, " ") {
		if w != "" {
			words = append(words, w)
		}
	}

	var lines []Line
	current := []string{words[0]}
	for _, word := range words[1:] {
		tentative := strings.Join(append(append([]string{}, current...), word), " ")
		if m.TextWidth(s.Shape(tentative), variant, size) <= maxWidth {
			current = append(current, word)
			continue
		}
		lines = append(lines, Line{Words: current, Kind: kind})
		current = []string{word}
	}
	lines = append(lines, Line{Words: current, Kind: kind, LastInParagraph: true})
	return lines
}

// wrapBody wraps a whole body. Every newline is a hard paragraph
// boundary; see the Layout doc comment for the soft-wrap caveat.
func wrapBody(body string, size, maxWidth float64, m Measurer, s Shaper) []Line {
	var lines []Line
	for _, paragraph := range strings.Split(body, "\n") {
		lines = append(lines, wrapParagraph(paragraph, LineBody, size, maxWidth, m, s)...)
	}
	return lines
}
