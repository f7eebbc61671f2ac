package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"log"
	"os"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	xdraw "golang.org/x/image/draw"

	"github.com/negarbot/negar/fonts"
	"github.com/negarbot/negar/layout"
	"github.com/negarbot/negar/renderer"
)

const (
	defaultOverlayAlpha     = 100
	defaultJPEGQuality      = 90
	defaultLineHeightFactor = 1.5
)

// Options configures the canvas renderer.
type Options struct {
	// BackgroundPath is the card background image. Missing at render
	// time is a hard failure.
	BackgroundPath string
	// FontChain and TitleFontChain are ordered fallback paths for the
	// body and title faces. An empty title chain reuses the body chain
	// in its bold style. When nothing in a chain resolves, the built-in
	// fallback face is used and a warning is logged.
	FontChain      []string
	TitleFontChain []string
	// OverlayAlpha is the white overlay drawn between the background
	// and the text to keep it readable (0 disables, default 100).
	OverlayAlpha int
	// JPEGQuality defaults to 90.
	JPEGQuality int
	// LineHeightFactor is the line slot height relative to the font
	// size (default 1.5).
	LineHeightFactor float64
	// Shaper converts logical run text to display order before drawing.
	Shaper layout.Shaper
}

// Renderer draws layout results onto the background image via
// github.com/tdewolff/canvas and encodes one JPEG per page. It also
// implements layout.Measurer, so the same font stack that draws the
// text measures it. All canvas units are pixels; faces are created in
// points and rasterization runs at one dot per unit.
type Renderer struct {
	opts Options

	bodyFamily  *canvas.FontFamily
	titleFamily *canvas.FontFamily
	titleStyle  canvas.FontStyle
	degraded    bool

	faceMu sync.Mutex
	faces  map[faceKey]*canvas.FontFace

	bgMu        sync.Mutex
	backgrounds map[string]image.Image
}

type faceKey struct {
	variant layout.FontVariant
	size    float64
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Measurer   = (*Renderer)(nil)
)

// New loads the configured font chains and returns a ready renderer.
// Font trouble degrades to the built-in face with a warning; only a
// totally unusable font file is an error.
func New(opts Options) (*Renderer, error) {
	if opts.Shaper == nil {
		return nil, fmt.Errorf("canvasrenderer: missing shaper")
	}
	if opts.OverlayAlpha == 0 {
		opts.OverlayAlpha = defaultOverlayAlpha
	}
	if opts.JPEGQuality <= 0 {
		opts.JPEGQuality = defaultJPEGQuality
	}
	if opts.LineHeightFactor <= 0 {
		opts.LineHeightFactor = defaultLineHeightFactor
	}

	r := &Renderer{
		opts:        opts,
		faces:       map[faceKey]*canvas.FontFace{},
		backgrounds: map[string]image.Image{},
	}

	bodyData, degraded := resolveChain(opts.FontChain, "body")
	r.degraded = degraded
	r.bodyFamily = canvas.NewFontFamily("negar-body")
	if err := r.bodyFamily.LoadFont(bodyData, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("canvasrenderer: load body font: %w", err)
	}

	if len(opts.TitleFontChain) > 0 {
		titleData, deg := resolveChain(opts.TitleFontChain, "title")
		r.degraded = r.degraded || deg
		r.titleFamily = canvas.NewFontFamily("negar-title")
		if err := r.titleFamily.LoadFont(titleData, 0, canvas.FontBold); err != nil {
			return nil, fmt.Errorf("canvasrenderer: load title font: %w", err)
		}
		r.titleStyle = canvas.FontBold
	} else {
		// Reuse the body face; the title still stands out through its
		// larger size and centering.
		r.titleFamily = r.bodyFamily
		r.titleStyle = canvas.FontRegular
	}
	return r, nil
}

func resolveChain(chain []string, kind string) ([]byte, bool) {
	path, data, err := fonts.Resolve(chain)
	if err != nil {
		log.Printf("warning: no %s font found in chain %v, falling back to built-in face", kind, chain)
		return fonts.Fallback(), true
	}
	log.Printf("using %s font %s", kind, path)
	return data, false
}

// Degraded reports whether any face fell back to the built-in font.
func (r *Renderer) Degraded() bool { return r.degraded }

// TextWidth implements layout.Measurer.
func (r *Renderer) TextWidth(shaped string, variant layout.FontVariant, size float64) float64 {
	return r.fontFace(variant, size).TextWidth(shaped)
}

// LineHeight implements layout.Measurer. The slot height is a fixed
// factor of the font size, matching the height budget the layout engine
// paginates with.
func (r *Renderer) LineHeight(_ layout.FontVariant, size float64) float64 {
	return size * r.opts.LineHeightFactor
}

// BackgroundSize reports the background dimensions so callers can derive
// the canvas size for layout.
func (r *Renderer) BackgroundSize() (int, int, error) {
	bg, err := r.loadBackground(r.opts.BackgroundPath)
	if err != nil {
		return 0, 0, err
	}
	b := bg.Bounds()
	return b.Dx(), b.Dy(), nil
}

// Render draws every page onto a copy of the configured background and
// returns the encoded JPEGs in page order.
func (r *Renderer) Render(result *layout.Result) ([][]byte, error) {
	return r.RenderOn(result, r.opts.BackgroundPath)
}

// RenderOn is Render with an alternative background image, used for
// per-card background overrides.
func (r *Renderer) RenderOn(result *layout.Result, backgroundPath string) ([][]byte, error) {
	if result == nil || len(result.Pages) == 0 {
		return nil, fmt.Errorf("canvasrenderer: no pages to render")
	}
	bg, err := r.loadBackground(backgroundPath)
	if err != nil {
		return nil, err
	}

	out := make([][]byte, 0, len(result.Pages))
	for _, page := range result.Pages {
		img, err := r.renderPage(page, result, bg)
		if err != nil {
			return nil, fmt.Errorf("canvasrenderer: page %d: %w", page.Index, err)
		}
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: r.opts.JPEGQuality}); err != nil {
			return nil, fmt.Errorf("canvasrenderer: encode page %d: %w", page.Index, err)
		}
		out = append(out, buf.Bytes())
	}
	return out, nil
}

func (r *Renderer) renderPage(page layout.Page, result *layout.Result, bg image.Image) (image.Image, error) {
	c := canvas.New(result.CanvasWidth, result.CanvasHeight)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // top-left origin, like the layout

	for _, run := range page.Runs {
		size := result.FontSize
		if run.Variant == layout.FontTitle {
			size = result.TitleFontSize
		}
		face := r.fontFace(run.Variant, size)
		shaped := r.opts.Shaper.Shape(run.Text)
		// Runs anchor at the top of their slot; the baseline sits one
		// ascent below.
		baseline := run.Y + face.Metrics().Ascent
		ctx.DrawText(run.X, baseline, canvas.NewTextLine(face, shaped, canvas.Left))
	}

	text := rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace)

	dst := image.NewRGBA(image.Rect(0, 0, int(result.CanvasWidth), int(result.CanvasHeight)))
	if bg.Bounds().Dx() == dst.Bounds().Dx() && bg.Bounds().Dy() == dst.Bounds().Dy() {
		draw.Draw(dst, dst.Bounds(), bg, bg.Bounds().Min, draw.Src)
	} else {
		xdraw.BiLinear.Scale(dst, dst.Bounds(), bg, bg.Bounds(), xdraw.Src, nil)
	}
	if a := r.opts.OverlayAlpha; a > 0 {
		overlay := image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: uint8(a)})
		draw.Draw(dst, dst.Bounds(), overlay, image.Point{}, draw.Over)
	}
	draw.Draw(dst, dst.Bounds(), text, text.Bounds().Min, draw.Over)
	return dst, nil
}

func (r *Renderer) loadBackground(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("canvasrenderer: no background image configured")
	}
	r.bgMu.Lock()
	defer r.bgMu.Unlock()
	if img, ok := r.backgrounds[path]; ok {
		return img, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("canvasrenderer: background %s: %w", path, err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("canvasrenderer: decode background %s: %w", path, err)
	}
	r.backgrounds[path] = img
	return img, nil
}

func (r *Renderer) fontFace(variant layout.FontVariant, size float64) *canvas.FontFace {
	r.faceMu.Lock()
	defer r.faceMu.Unlock()

	key := faceKey{variant: variant, size: size}
	if face, ok := r.faces[key]; ok {
		return face
	}

	family := r.bodyFamily
	style := canvas.FontRegular
	if variant == layout.FontTitle {
		family = r.titleFamily
		style = r.titleStyle
	}
	face := family.Face(size*layout.PxToPt, canvas.Black, style, canvas.FontNormal)
	r.faces[key] = face
	return face
}
