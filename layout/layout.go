package layout

import "fmt"

// Document is the immutable layout input. Body paragraphs are delimited
// by newline characters; empty lines are preserved as blank spacer lines
// in the output.
type Document struct {
	Title string
	Body  string
}

// Layout lays a document out onto a bounded sequence of fixed-size
// pages, choosing the largest font size in the policy range that still
// fits. On success the result carries at most Policy.MaxPages pages; if
// even the minimum size cannot fit, it returns ErrTooLong and no pages —
// content is never truncated silently.
//
// Every '\n' in the body is a hard paragraph boundary. Soft line breaks
// inside a logical paragraph are therefore treated as new paragraphs;
// callers that need soft wrapping must pre-join their lines.
//
// One call is a single synchronous CPU-bound run over fresh state;
// nothing is shared or cached across calls.
func Layout(doc Document, canvasWidth, canvasHeight float64, opts Options) (*Result, error) {
	if opts.Measurer == nil {
		return nil, fmt.Errorf("layout: missing measurer")
	}
	if opts.Shaper == nil {
		return nil, fmt.Errorf("layout: missing shaper")
	}
	if canvasWidth <= 0 || canvasHeight <= 0 {
		return nil, fmt.Errorf("layout: invalid canvas size %gx%g", canvasWidth, canvasHeight)
	}

	policy := opts.Policy.normalized()
	constraints := policy.Derive(canvasWidth, canvasHeight)

	cand, err := selectSize(doc, constraints, policy, opts.Measurer, opts.Shaper)
	if err != nil {
		return nil, err
	}

	linesPerPage := int(constraints.UsableHeight() / cand.LineHeight)
	chunks := paginate(cand.Lines, linesPerPage, constraints.MaxPages)
	pages := composePages(chunks, cand, constraints, policy, opts.Measurer, opts.Shaper)

	return &Result{
		Pages:           pages,
		FontSize:        cand.FontSize,
		TitleFontSize:   cand.TitleFontSize,
		LineHeight:      cand.LineHeight,
		TitleLineHeight: cand.TitleLineHeight,
		CanvasWidth:     canvasWidth,
		CanvasHeight:    canvasHeight,
	}, nil
}
