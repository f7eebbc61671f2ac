package layout

import "strings"

// This file defines the layout result types shared by the engine, the
// renderers and the debug JSON output.

// LineKind classifies a wrapped line.
type LineKind int

const (
	LineBody LineKind = iota
	LineTitle
	LineBlank
)

// Line is one wrapped line as produced by the wrapper. Words keep their
// original paragraph order; justification only changes inter-word spacing
// later, never the words themselves.
type Line struct {
	Words           []string `json:"words"`
	Kind            LineKind `json:"kind"`
	LastInParagraph bool     `json:"lastInParagraph"`
}

// Text joins the line's words with single spaces.
func (l Line) Text() string { return strings.Join(l.Words, " ") }

// Blank reports whether the line is an empty spacer line.
func (l Line) Blank() bool { return l.Kind == LineBlank }

// FontVariant selects the face a run is drawn with.
type FontVariant int

const (
	FontBody FontVariant = iota
	FontTitle
)

// Run is one positioned, styled piece of text on a page. Text is in
// logical order; the renderer shapes it right before drawing. X/Y is the
// top-left anchor of the line slot in pixels.
type Run struct {
	Text      string      `json:"text"`
	X         float64     `json:"x"`
	Y         float64     `json:"y"`
	Variant   FontVariant `json:"variant"`
	Justified bool        `json:"justified"`
}

// Page maps to exactly one rendered image of CanvasWidth×CanvasHeight.
// Blank lines contribute no run, only vertical space.
type Page struct {
	Index int   `json:"index"`
	Runs  []Run `json:"runs"`
}

// Constraints is derived once per layout run from the canvas dimensions
// and the static policy. All values are pixels except MaxPages.
type Constraints struct {
	CanvasWidth  float64 `json:"canvasWidth"`
	CanvasHeight float64 `json:"canvasHeight"`
	LeftPad      float64 `json:"leftPad"`
	RightPad     float64 `json:"rightPad"`
	TopPad       float64 `json:"topPad"`
	BottomPad    float64 `json:"bottomPad"`
	MinFontSize  float64 `json:"minFontSize"`
	MaxFontSize  float64 `json:"maxFontSize"`
	MaxPages     int     `json:"maxPages"`
}

// UsableWidth is the horizontal span available to body lines.
func (c Constraints) UsableWidth() float64 {
	return c.CanvasWidth - c.LeftPad - c.RightPad
}

// UsableHeight is the vertical span available to lines on one page.
func (c Constraints) UsableHeight() float64 {
	return c.CanvasHeight - c.TopPad - c.BottomPad
}

// Candidate is one font-size probe. Only the accepted candidate survives
// the size search.
type Candidate struct {
	FontSize        float64 `json:"fontSize"`
	TitleFontSize   float64 `json:"titleFontSize"`
	Lines           []Line  `json:"lines"`
	LineHeight      float64 `json:"lineHeight"`
	TitleLineHeight float64 `json:"titleLineHeight"`
	TotalHeight     float64 `json:"totalHeight"`
}

// Result holds the paginated layout plus everything a renderer needs to
// draw it (accepted font sizes, line heights, canvas dimensions).
type Result struct {
	Pages           []Page  `json:"pages"`
	FontSize        float64 `json:"fontSize"`
	TitleFontSize   float64 `json:"titleFontSize"`
	LineHeight      float64 `json:"lineHeight"`
	TitleLineHeight float64 `json:"titleLineHeight"`
	CanvasWidth     float64 `json:"canvasWidth"`
	CanvasHeight    float64 `json:"canvasHeight"`
}
