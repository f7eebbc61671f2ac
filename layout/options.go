package layout

// Measurer reports pixel metrics for already-shaped text. The canvas
// renderer implements it; tests substitute a deterministic stub.
type Measurer interface {
	// TextWidth returns the rendered width of shaped text in pixels.
	TextWidth(shaped string, variant FontVariant, size float64) float64
	// LineHeight returns the vertical slot one line occupies in pixels.
	LineHeight(variant FontVariant, size float64) float64
}

// Shaper converts logical RTL-aware text into a display-ordered string
// that can be measured and drawn left to right. Shaping a fragment for
// measurement must never influence layout decisions beyond its width.
type Shaper interface {
	Shape(raw string) string
}

// Options configures one layout run.
type Options struct {
	Measurer Measurer
	Shaper   Shaper
	Policy   Policy
}

// Policy holds the static layout constants. Zero value means
// DefaultPolicy; configuration may override individual knobs.
type Policy struct {
	MinFontSize     float64 `yaml:"minFontSize"`
	DefaultFontSize float64 `yaml:"defaultFontSize"`
	MaxFontSize     float64 `yaml:"maxFontSize"`
	MaxPages        int     `yaml:"maxPages"`

	// Word-count tier bounds for the initial size guess: fewer than
	// ShortWords words starts at MaxFontSize, fewer than LongWords at
	// DefaultFontSize, anything longer at MinFontSize.
	ShortWords int `yaml:"shortWords"`
	LongWords  int `yaml:"longWords"`

	// Padding as fractions of the canvas dimensions.
	LeftPadFrac   float64 `yaml:"leftPadFrac"`
	RightPadFrac  float64 `yaml:"rightPadFrac"`
	TopPadFrac    float64 `yaml:"topPadFrac"`
	BottomPadFrac float64 `yaml:"bottomPadFrac"`

	// TitleScale is the title face size relative to the body face.
	// TitleWidthFrac bounds title lines to a fraction of the usable
	// width since titles are centered.
	TitleScale     float64 `yaml:"titleScale"`
	TitleWidthFrac float64 `yaml:"titleWidthFrac"`

	// IndentSpaces is the width of the first-line paragraph indent,
	// expressed as a number of space characters in the body face.
	IndentSpaces int `yaml:"indentSpaces"`
}

// DefaultPolicy mirrors the production card policy.
var DefaultPolicy = Policy{
	MinFontSize:     80,
	DefaultFontSize: 90,
	MaxFontSize:     110,
	MaxPages:        2,
	ShortWords:      100,
	LongWords:       200,
	LeftPadFrac:     0.10,
	RightPadFrac:    0.10,
	TopPadFrac:      0.25,
	BottomPadFrac:   0.15,
	TitleScale:      1.2,
	TitleWidthFrac:  0.70,
	IndentSpaces:    3,
}

// normalized fills zero fields from DefaultPolicy so partial overrides
// from configuration stay safe.
func (p Policy) normalized() Policy {
	d := DefaultPolicy
	if p.MinFontSize <= 0 {
		p.MinFontSize = d.MinFontSize
	}
	if p.DefaultFontSize <= 0 {
		p.DefaultFontSize = d.DefaultFontSize
	}
	if p.MaxFontSize <= 0 {
		p.MaxFontSize = d.MaxFontSize
	}
	if p.MaxPages <= 0 {
		p.MaxPages = d.MaxPages
	}
	if p.ShortWords <= 0 {
		p.ShortWords = d.ShortWords
	}
	if p.LongWords <= 0 {
		p.LongWords = d.LongWords
	}
	if p.LeftPadFrac <= 0 {
		p.LeftPadFrac = d.LeftPadFrac
	}
	if p.RightPadFrac <= 0 {
		p.RightPadFrac = d.RightPadFrac
	}
	if p.TopPadFrac <= 0 {
		p.TopPadFrac = d.TopPadFrac
	}
	if p.BottomPadFrac <= 0 {
		p.BottomPadFrac = d.BottomPadFrac
	}
	if p.TitleScale <= 0 {
		p.TitleScale = d.TitleScale
	}
	if p.TitleWidthFrac <= 0 {
		p.TitleWidthFrac = d.TitleWidthFrac
	}
	if p.IndentSpaces <= 0 {
		p.IndentSpaces = d.IndentSpaces
	}
	if p.MinFontSize > p.MaxFontSize {
		p.MinFontSize, p.MaxFontSize = p.MaxFontSize, p.MinFontSize
	}
	if p.DefaultFontSize < p.MinFontSize {
		p.DefaultFontSize = p.MinFontSize
	}
	if p.DefaultFontSize > p.MaxFontSize {
		p.DefaultFontSize = p.MaxFontSize
	}
	return p
}

// Derive computes the per-run constraints from canvas dimensions.
func (p Policy) Derive(canvasWidth, canvasHeight float64) Constraints {
	p = p.normalized()
	return Constraints{
		CanvasWidth:  canvasWidth,
		CanvasHeight: canvasHeight,
		LeftPad:      canvasWidth * p.LeftPadFrac,
		RightPad:     canvasWidth * p.RightPadFrac,
		TopPad:       canvasHeight * p.TopPadFrac,
		BottomPad:    canvasHeight * p.BottomPadFrac,
		MinFontSize:  p.MinFontSize,
		MaxFontSize:  p.MaxFontSize,
		MaxPages:     p.MaxPages,
	}
}
