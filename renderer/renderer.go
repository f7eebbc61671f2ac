package renderer

import "github.com/negarbot/negar/layout"

// Renderer turns a layout result into encoded page images, one byte
// slice per page.
type Renderer interface {
	Render(result *layout.Result) ([][]byte, error)
}
