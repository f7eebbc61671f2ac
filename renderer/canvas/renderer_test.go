package canvasrenderer

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/negarbot/negar/layout"
	"github.com/negarbot/negar/shaping"
)

func writeBackground(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 220, B: 240, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "bg.jpg")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, img, nil))
	return path
}

func newTestRenderer(t *testing.T, bgPath string) *Renderer {
	t.Helper()
	// Empty chains force the built-in fallback face, so the test needs
	// no font assets on disk.
	r, err := New(Options{
		BackgroundPath: bgPath,
		Shaper:         shaping.Bidi{},
	})
	require.NoError(t, err)
	require.True(t, r.Degraded())
	return r
}

func TestMeasurerReportsSaneMetrics(t *testing.T) {
	r := newTestRenderer(t, "")

	short := r.TextWidth("hi", layout.FontBody, 24)
	long := r.TextWidth("hello world", layout.FontBody, 24)
	assert.Greater(t, short, 0.0)
	assert.Greater(t, long, short)

	assert.InDelta(t, 36, r.LineHeight(layout.FontBody, 24), 1e-9)
}

func TestBackgroundSize(t *testing.T) {
	bg := writeBackground(t, 320, 240)
	r := newTestRenderer(t, bg)

	w, h, err := r.BackgroundSize()
	require.NoError(t, err)
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)
}

func TestRenderProducesOneJPEGPerPage(t *testing.T) {
	bg := writeBackground(t, 400, 300)
	r := newTestRenderer(t, bg)

	res, err := layout.Layout(layout.Document{Title: "hi", Body: "hello wide world"}, 400, 300, layout.Options{
		Measurer: r,
		Shaper:   shaping.Bidi{},
		Policy: layout.Policy{
			MinFontSize:     10,
			DefaultFontSize: 12,
			MaxFontSize:     16,
			MaxPages:        2,
		},
	})
	require.NoError(t, err)

	images, err := r.Render(res)
	require.NoError(t, err)
	require.Len(t, images, len(res.Pages))

	for _, data := range images {
		img, err := jpeg.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 400, img.Bounds().Dx())
		assert.Equal(t, 300, img.Bounds().Dy())
	}
}

func TestRenderFailsWithoutBackground(t *testing.T) {
	r := newTestRenderer(t, filepath.Join(t.TempDir(), "missing.jpg"))
	res := &layout.Result{
		Pages:        []layout.Page{{}},
		FontSize:     12,
		CanvasWidth:  100,
		CanvasHeight: 100,
	}
	_, err := r.Render(res)
	assert.Error(t, err)
}

func TestNewRequiresShaper(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}
