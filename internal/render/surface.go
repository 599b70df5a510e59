package render

// Align positions text inside its wrap width.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Size is a measured text block extent in points.
type Size struct {
	W, H float64
}

// TextStyle selects font weight and size for one draw or measure call.
type TextStyle struct {
	Bold bool
	Size float64
}

// TextOptions controls a DrawText call. Width zero draws a single unwrapped
// line anchored at x by Align.
type TextOptions struct {
	Style   TextStyle
	Color   RGB
	Width   float64
	Align   Align
	LineGap float64
}

// ImageFit constrains DrawImage scaling. A zero FitHeight scales by width
// alone, preserving the image aspect ratio.
type ImageFit struct {
	FitWidth  float64
	FitHeight float64
}

// TextMeasurer sizes a text block ahead of drawing. Implementations must be
// deterministic for identical inputs: the planner measures first and draws at
// the measured height, and the two passes must agree.
type TextMeasurer interface {
	MeasureText(text string, style TextStyle, wrapWidth float64) Size
}

// DrawingSurface is a fixed-size page with margins and drawing primitives.
// It accumulates output additively; abandoning a surface mid-render needs no
// cleanup. DrawText returns the drawn height. DrawImage reports failure for
// undecodable bytes instead of poisoning the surface, so callers can fall
// back to a placeholder.
type DrawingSurface interface {
	TextMeasurer

	PageWidth() float64
	PageHeight() float64
	Margins() Margins
	BodyWidth() float64

	DrawText(text string, x, y float64, opts TextOptions) float64
	FillRect(x, y, w, h float64, color RGB)
	StrokeLine(x1, y1, x2, y2 float64, color RGB, thickness float64, dash []float64)
	DrawImage(data []byte, x, y float64, fit ImageFit) (Size, error)
}
