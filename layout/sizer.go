package layout

import (
	"errors"
	"math"
	"strings"
)

// ErrTooLong signals that no font size in the allowed range fits the
// text within the page budget. It is an expected, user-correctable
// condition, not a crash; callers receive no pages alongside it.
var ErrTooLong = errors.New("layout: text does not fit within the page budget")

// selectSize finds the largest font size whose wrapped height fits
// within MaxPages. The initial guess comes from coarse word-count
// tiering; from there the size decrements by 1 with a full re-wrap per
// probe. The range is a few tens of integer steps, so the linear walk
// terminates quickly by construction.
func selectSize(doc Document, c Constraints, p Policy, m Measurer, s Shaper) (Candidate, error) {
	size := initialSize(doc.Body, p)
	for {
		cand := buildCandidate(doc, c, p, size, m, s)
		if pagesNeeded(cand.TotalHeight, c.UsableHeight()) <= c.MaxPages {
			return cand, nil
		}
		if size <= c.MinFontSize {
			return Candidate{}, ErrTooLong
		}
		size--
	}
}

// initialSize picks the starting probe by word-count tier: short texts
// get the largest size, long texts the smallest, the middle band the
// default. Three discrete bands, not continuous scaling.
func initialSize(body string, p Policy) float64 {
	switch n := len(strings.Fields(body)); {
	case n < p.ShortWords:
		return p.MaxFontSize
	case n < p.LongWords:
		return p.DefaultFontSize
	default:
		return p.MinFontSize
	}
}

// buildCandidate wraps title and body at the given size. The title is
// wrapped against a narrower target since it is centered, and when
// present is followed by exactly one blank spacer line.
func buildCandidate(doc Document, c Constraints, p Policy, size float64, m Measurer, s Shaper) Candidate {
	titleSize := size * p.TitleScale
	cand := Candidate{
		FontSize:        size,
		TitleFontSize:   titleSize,
		LineHeight:      m.LineHeight(FontBody, size),
		TitleLineHeight: m.LineHeight(FontTitle, titleSize),
	}

	if strings.TrimSpace(doc.Title) != "" {
		titleWidth := c.UsableWidth() * p.TitleWidthFrac
		cand.Lines = append(cand.Lines, wrapParagraph(doc.Title, LineTitle, titleSize, titleWidth, m, s)...)
		cand.Lines = append(cand.Lines, Line{Kind: LineBlank, LastInParagraph: true})
	}
	cand.Lines = append(cand.Lines, wrapBody(doc.Body, size, c.UsableWidth(), m, s)...)

	// The height budget stays authoritative over line counts: title
	// lines occupy the taller title slot in the sum.
	for _, ln := range cand.Lines {
		if ln.Kind == LineTitle {
			cand.TotalHeight += cand.TitleLineHeight
		} else {
			cand.TotalHeight += cand.LineHeight
		}
	}
	return cand
}

func pagesNeeded(totalHeight, usableHeight float64) int {
	if totalHeight <= 0 {
		return 1
	}
	if usableHeight <= 0 {
		return math.MaxInt32
	}
	return int(math.Ceil(totalHeight / usableHeight))
}
