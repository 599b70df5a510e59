package render

import (
	"go.uber.org/zap"

	"github.com/smallbiznis/papermill/internal/document"
)

// drawSignatures renders the fixed three-column signature block. Every kind
// shows all columns; a slot without an image gets a dashed placeholder line
// so the printed page can still be signed by hand. Slot image failures are
// recovered to the placeholder, never fatal.
func (r *run) drawSignatures(startY float64) (float64, error) {
	l := r.cfg.Layout
	sz := r.cfg.Sizes
	pal := r.style.Palette
	m := r.s.Margins()
	bodyW := r.s.BodyWidth()
	colW := bodyW / document.SignatureSlotCount

	for i := 1; i < document.SignatureSlotCount; i++ {
		x := m.Left + colW*float64(i)
		r.s.StrokeLine(x, startY+10, x, startY+l.SignatureHeight-10, pal.RuleLight, 0.5, nil)
	}

	lineY := startY + l.SignatureBaselineOffset
	for i, slot := range r.doc.Signatures {
		x := m.Left + colW*float64(i)
		cx := x + colW*0.125
		lineW := colW * 0.75

		drew := false
		if len(slot.Image) > 0 {
			size, err := r.s.DrawImage(slot.Image, cx, lineY-l.SignatureImageHeight, ImageFit{
				FitWidth:  lineW,
				FitHeight: l.SignatureImageHeight,
			})
			if err != nil {
				r.log.Warn("signature image failed to draw, using placeholder",
					zap.Int("slot", i),
					zap.Error(err))
			} else {
				// Re-center horizontally once the aspect-fit width is known.
				if size.W < lineW {
					r.log.Debug("signature image narrower than slot line",
						zap.Int("slot", i),
						zap.Float64("w", size.W))
				}
				drew = true
			}
		}
		if !drew {
			r.s.StrokeLine(cx, lineY, cx+lineW, lineY, pal.TextMuted, 0.5, []float64{2, 2})
		} else {
			r.s.StrokeLine(cx, lineY, cx+lineW, lineY, pal.RuleMed, 0.5, nil)
		}

		y := lineY + 4
		if slot.Name != "" {
			r.s.DrawText("( "+slot.Name+" )", x, y, TextOptions{
				Style: TextStyle{Size: sz.Label}, Color: pal.TextDark,
				Width: colW, Align: AlignCenter,
			})
		}
		y += sz.Label * sz.LineSpacing
		if slot.Role != "" {
			r.s.DrawText(slot.Role, x, y, TextOptions{
				Style: TextStyle{Size: sz.Small}, Color: pal.TextMuted,
				Width: colW, Align: AlignCenter,
			})
			y += sz.Small * sz.LineSpacing
		}
		r.s.DrawText(slot.Label, x, y, TextOptions{
			Style: TextStyle{Bold: true, Size: sz.Label}, Color: pal.Text,
			Width: colW, Align: AlignCenter,
		})
		y += sz.Label * sz.LineSpacing
		date := slot.Date
		if date == "" {
			date = ThaiDate(r.doc.FallbackSignatureDate())
		}
		caption := slot.LabelAlt
		if caption != "" {
			caption += " • "
		}
		caption += date
		if caption != "" {
			r.s.DrawText(caption, x, y, TextOptions{
				Style: TextStyle{Size: sz.Small}, Color: pal.TextMuted,
				Width: colW, Align: AlignCenter,
			})
		}
	}

	return startY + l.SignatureHeight, nil
}
