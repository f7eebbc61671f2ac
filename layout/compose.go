package layout

import "strings"

// composePages assigns every line an x/y anchor and a font variant.
//
// Placement rules:
//   - title lines are centered within the padded span;
//   - blank lines advance y by one slot and emit no run;
//   - body lines that are not last in their paragraph and hold at least
//     two words are justified against the usable width and anchored at
//     the left padding;
//   - last (or single-word) body lines are right-anchored, clamped so
//     they never cross the left padding;
//   - the first line of a paragraph (previous line blank or title) gets
//     an extra indent at the trailing edge: justified lines shrink their
//     target width, edge-aligned lines shift their anchor.
func composePages(chunks [][]Line, cand Candidate, c Constraints, p Policy, m Measurer, s Shaper) []Page {
	indent := m.TextWidth(strings.Repeat(" ", p.IndentSpaces), FontBody, cand.FontSize)
	usable := c.UsableWidth()

	pages := make([]Page, 0, len(chunks))
	prevKind := LineBlank // the document opens a paragraph
	for pi, chunk := range chunks {
		page := Page{Index: pi}
		y := c.TopPad
		for _, line := range chunk {
			switch line.Kind {
			case LineBlank:
				y += cand.LineHeight
			case LineTitle:
				text := line.Text()
				w := m.TextWidth(s.Shape(text), FontTitle, cand.TitleFontSize)
				x := c.LeftPad + (usable-w)/2
				if x < c.LeftPad {
					x = c.LeftPad
				}
				page.Runs = append(page.Runs, Run{Text: text, X: x, Y: y, Variant: FontTitle})
				y += cand.TitleLineHeight
			default:
				firstInParagraph := prevKind == LineBlank || prevKind == LineTitle
				ind := 0.0
				if firstInParagraph {
					ind = indent
				}
				if !line.LastInParagraph && len(line.Words) >= 2 {
					text := Justify(line.Words, FontBody, cand.FontSize, usable-ind, m, s)
					page.Runs = append(page.Runs, Run{Text: text, X: c.LeftPad, Y: y, Variant: FontBody, Justified: true})
				} else {
					text := line.Text()
					w := m.TextWidth(s.Shape(text), FontBody, cand.FontSize)
					x := c.CanvasWidth - c.RightPad - ind - w
					if x < c.LeftPad {
						x = c.LeftPad
					}
					page.Runs = append(page.Runs, Run{Text: text, X: x, Y: y, Variant: FontBody})
				}
				y += cand.LineHeight
			}
			prevKind = line.Kind
		}
		pages = append(pages, page)
	}
	return pages
}
