package render

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/smallbiznis/papermill/internal/document"
)

// fakeSurface records drawing calls with deterministic fixed-width metrics,
// so section tests can assert on layout decisions without a PDF backend.
type fakeSurface struct {
	pageW, pageH float64
	margins      Margins

	texts  []textOp
	rects  []rectOp
	lines  []lineOp
	images []imageOp

	imageErr error
}

type textOp struct {
	Text  string
	X, Y  float64
	Opts  TextOptions
	Drawn float64
}

type rectOp struct {
	X, Y, W, H float64
	Color      RGB
}

type lineOp struct {
	X1, Y1, X2, Y2 float64
	Color          RGB
	Dash           []float64
}

type imageOp struct {
	X, Y float64
	Fit  ImageFit
}

const fakeCharWidth = 5.0

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		pageW:   595.28,
		pageH:   841.89,
		margins: Margins{Top: 20, Bottom: 45, Left: 45, Right: 45},
	}
}

func (f *fakeSurface) PageWidth() float64  { return f.pageW }
func (f *fakeSurface) PageHeight() float64 { return f.pageH }
func (f *fakeSurface) Margins() Margins    { return f.margins }
func (f *fakeSurface) BodyWidth() float64  { return f.pageW - f.margins.Left - f.margins.Right }

func (f *fakeSurface) MeasureText(text string, style TextStyle, wrapWidth float64) Size {
	if text == "" {
		return Size{}
	}
	size := style.Size
	if size <= 0 {
		size = 12
	}
	lineH := size * 1.25
	w := float64(len([]rune(text))) * fakeCharWidth
	if wrapWidth <= 0 || w <= wrapWidth {
		return Size{W: w, H: lineH}
	}
	lines := math.Ceil(w / wrapWidth)
	return Size{W: wrapWidth, H: lines * lineH}
}

func (f *fakeSurface) DrawText(text string, x, y float64, opts TextOptions) float64 {
	h := f.MeasureText(text, opts.Style, opts.Width).H
	f.texts = append(f.texts, textOp{Text: text, X: x, Y: y, Opts: opts, Drawn: h})
	return h
}

func (f *fakeSurface) FillRect(x, y, w, h float64, color RGB) {
	f.rects = append(f.rects, rectOp{X: x, Y: y, W: w, H: h, Color: color})
}

func (f *fakeSurface) StrokeLine(x1, y1, x2, y2 float64, color RGB, thickness float64, dash []float64) {
	f.lines = append(f.lines, lineOp{X1: x1, Y1: y1, X2: x2, Y2: y2, Color: color, Dash: dash})
}

func (f *fakeSurface) DrawImage(data []byte, x, y float64, fit ImageFit) (Size, error) {
	if f.imageErr != nil {
		return Size{}, f.imageErr
	}
	f.images = append(f.images, imageOp{X: x, Y: y, Fit: fit})
	h := fit.FitHeight
	if h <= 0 {
		h = fit.FitWidth * 0.5
	}
	return Size{W: fit.FitWidth, H: h}, nil
}

func (f *fakeSurface) textContaining(substr string) (textOp, bool) {
	for _, op := range f.texts {
		if strings.Contains(op.Text, substr) {
			return op, true
		}
	}
	return textOp{}, false
}

func (f *fakeSurface) dashedLines() []lineOp {
	var dashed []lineOp
	for _, op := range f.lines {
		if len(op.Dash) > 0 {
			dashed = append(dashed, op)
		}
	}
	return dashed
}

func newTestRun(doc *document.Document, s DrawingSurface) *run {
	cfg := DefaultConfig()
	return newRun(cfg, StyleFor(doc.Kind, cfg), doc, s, zap.NewNop())
}
