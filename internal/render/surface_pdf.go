package render

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
)

const fallbackFamily = "Helvetica"

// pdfSurface implements DrawingSurface on top of go-pdf/fpdf. One surface
// serves exactly one render; it is never shared across goroutines.
type pdfSurface struct {
	pdf    *fpdf.Fpdf
	cfg    RenderConfig
	family string
	log    *zap.Logger
}

func newPDFSurface(cfg RenderConfig, creation time.Time, log *zap.Logger) *pdfSurface {
	pdf := fpdf.New("P", "pt", "A4", cfg.Font.Dir)
	pdf.SetMargins(cfg.Page.Margins.Left, cfg.Page.Margins.Top, cfg.Page.Margins.Right)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(false)
	// Resource dictionaries are emitted in map order unless sorted; together
	// with the pinned dates this keeps repeat renders byte-identical.
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(creation)
	pdf.SetModificationDate(creation)

	s := &pdfSurface{pdf: pdf, cfg: cfg, log: log}
	s.family = s.registerFonts()
	pdf.AddPage()
	return s
}

// registerFonts registers the configured TTF pair, falling back to the
// built-in Helvetica family when the files are missing. The fallback keeps
// the same type scale so the layout does not change shape.
func (s *pdfSurface) registerFonts() string {
	regular := filepath.Join(s.cfg.Font.Dir, s.cfg.Font.Regular)
	if _, err := os.Stat(regular); err != nil {
		s.log.Warn("document font not found, falling back",
			zap.String("path", regular),
			zap.String("fallback", fallbackFamily))
		return fallbackFamily
	}
	s.pdf.AddUTF8Font(s.cfg.Font.Family, "", s.cfg.Font.Regular)

	bold := filepath.Join(s.cfg.Font.Dir, s.cfg.Font.Bold)
	if _, err := os.Stat(bold); err == nil {
		s.pdf.AddUTF8Font(s.cfg.Font.Family, "B", s.cfg.Font.Bold)
	} else {
		// Bold style maps onto the regular face rather than failing.
		s.pdf.AddUTF8Font(s.cfg.Font.Family, "B", s.cfg.Font.Regular)
	}
	if s.pdf.Err() {
		err := s.pdf.Error()
		s.pdf.ClearError()
		s.log.Warn("font registration failed, falling back",
			zap.Error(err),
			zap.String("fallback", fallbackFamily))
		return fallbackFamily
	}
	return s.cfg.Font.Family
}

func (s *pdfSurface) PageWidth() float64  { return s.cfg.Page.Width }
func (s *pdfSurface) PageHeight() float64 { return s.cfg.Page.Height }
func (s *pdfSurface) Margins() Margins    { return s.cfg.Page.Margins }
func (s *pdfSurface) BodyWidth() float64  { return s.cfg.BodyWidth() }

func (s *pdfSurface) setFont(style TextStyle) {
	weight := ""
	if style.Bold {
		weight = "B"
	}
	size := style.Size
	if size <= 0 {
		size = s.cfg.Sizes.Body
	}
	s.pdf.SetFont(s.family, weight, size)
}

func (s *pdfSurface) lineHeight(style TextStyle) float64 {
	size := style.Size
	if size <= 0 {
		size = s.cfg.Sizes.Body
	}
	return size * s.cfg.Sizes.LineSpacing
}

func alignString(a Align) string {
	switch a {
	case AlignCenter:
		return "CM"
	case AlignRight:
		return "RM"
	default:
		return "LM"
	}
}

// sanitize replaces runes the fallback core font cannot address. Core font
// width tables are indexed by codepoint and only cover Latin-1, so without
// this a Thai string would panic inside SplitText when the TTF pair is
// missing. With the real font registered, text passes through untouched.
func (s *pdfSurface) sanitize(text string) string {
	if s.family != fallbackFamily {
		return text
	}
	runes := []rune(text)
	changed := false
	for i, c := range runes {
		if c > 0xFF {
			runes[i] = '?'
			changed = true
		}
	}
	if !changed {
		return text
	}
	return string(runes)
}

func (s *pdfSurface) MeasureText(text string, style TextStyle, wrapWidth float64) Size {
	if text == "" {
		return Size{}
	}
	text = s.sanitize(text)
	s.setFont(style)
	lineH := s.lineHeight(style)
	if wrapWidth <= 0 {
		return Size{W: s.pdf.GetStringWidth(text), H: lineH}
	}
	lines := s.pdf.SplitText(text, wrapWidth)
	if len(lines) == 0 {
		return Size{}
	}
	var maxW float64
	for _, line := range lines {
		if w := s.pdf.GetStringWidth(line); w > maxW {
			maxW = w
		}
	}
	return Size{W: maxW, H: float64(len(lines)) * lineH}
}

func (s *pdfSurface) DrawText(text string, x, y float64, opts TextOptions) float64 {
	if text == "" {
		return 0
	}
	text = s.sanitize(text)
	s.setFont(opts.Style)
	s.pdf.SetTextColor(opts.Color.R, opts.Color.G, opts.Color.B)
	lineH := s.lineHeight(opts.Style)

	width := opts.Width
	var lines []string
	if width <= 0 {
		width = s.pdf.GetStringWidth(text) + 1
		lines = []string{text}
	} else {
		lines = s.pdf.SplitText(text, width)
	}

	cursor := y
	for i, line := range lines {
		if i > 0 {
			cursor += opts.LineGap
		}
		s.pdf.SetXY(x, cursor)
		s.pdf.CellFormat(width, lineH, line, "", 0, alignString(opts.Align), false, 0, "")
		cursor += lineH
	}
	return cursor - y
}

func (s *pdfSurface) FillRect(x, y, w, h float64, color RGB) {
	s.pdf.SetFillColor(color.R, color.G, color.B)
	s.pdf.Rect(x, y, w, h, "F")
}

func (s *pdfSurface) StrokeLine(x1, y1, x2, y2 float64, color RGB, thickness float64, dash []float64) {
	s.pdf.SetDrawColor(color.R, color.G, color.B)
	s.pdf.SetLineWidth(thickness)
	if len(dash) > 0 {
		s.pdf.SetDashPattern(dash, 0)
		defer s.pdf.SetDashPattern([]float64{}, 0)
	}
	s.pdf.Line(x1, y1, x2, y2)
}

func (s *pdfSurface) DrawImage(data []byte, x, y float64, fit ImageFit) (Size, error) {
	if len(data) == 0 {
		return Size{}, fmt.Errorf("empty_image")
	}
	// Decode fully before touching fpdf: a bad RegisterImage call would
	// poison the whole surface, and the contract here is fail-soft.
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Size{}, fmt.Errorf("decode_image: %w", err)
	}
	bounds := img.Bounds()
	pw, ph := float64(bounds.Dx()), float64(bounds.Dy())
	if pw <= 0 || ph <= 0 {
		return Size{}, fmt.Errorf("decode_image: degenerate dimensions")
	}

	w := fit.FitWidth
	h := w * ph / pw
	if fit.FitHeight > 0 && h > fit.FitHeight {
		h = fit.FitHeight
		w = h * pw / ph
	}

	sum := sha256.Sum256(data)
	name := fmt.Sprintf("img-%x", sum[:8])
	if s.pdf.GetImageInfo(name) == nil {
		s.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: format}, bytes.NewReader(data))
		if s.pdf.Err() {
			err := s.pdf.Error()
			s.pdf.ClearError()
			return Size{}, fmt.Errorf("register_image: %w", err)
		}
	}
	s.pdf.ImageOptions(name, x, y, w, h, false, fpdf.ImageOptions{ImageType: format}, 0, "")
	return Size{W: w, H: h}, nil
}

// Finalize encodes the accumulated page. A surface that failed font or
// stream setup fails here with a FinalizeError rather than returning a
// partially-written buffer.
func (s *pdfSurface) Finalize() ([]byte, error) {
	if s.pdf.Err() {
		return nil, &FinalizeError{Err: s.pdf.Error()}
	}
	var buf bytes.Buffer
	if err := s.pdf.Output(&buf); err != nil {
		return nil, &FinalizeError{Err: err}
	}
	if buf.Len() == 0 {
		return nil, ErrEmptyOutput
	}
	return buf.Bytes(), nil
}
