package layout

// The engine works in pixels throughout. Font backends create faces in
// points; sizes cross that boundary via these constants. The canvas
// renderer rasterizes at one pixel per canvas unit, which makes the
// classic pt↔mm factor double as the pt↔px factor.
const (
	PtToPx = 0.352777
	PxToPt = 1.0 / PtToPx
)
