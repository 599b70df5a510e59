package render

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/smallbiznis/papermill/internal/document"
)

// drawLineItems renders the items table: a filled header band with stacked
// bilingual labels, then fixed-height rows with alternating banding. Rows
// overflowing the safe content area are a logged warning, never a clip:
// multi-page flow is out of scope but callers need the signal to route the
// document for manual follow-up.
func (r *run) drawLineItems(startY float64) (float64, error) {
	l := r.cfg.Layout
	sz := r.cfg.Sizes
	pal := r.style.Palette
	m := r.s.Margins()
	bodyW := r.s.BodyWidth()
	cols := r.style.Columns

	y := startY
	r.s.FillRect(m.Left, y, bodyW, l.TableHeaderHeight, pal.Primary)

	x := m.Left
	for _, col := range cols {
		r.s.DrawText(col.Label, x+5, y+4, TextOptions{
			Style: TextStyle{Bold: true, Size: sz.TableHeader},
			Color: pal.OnPrimary,
			Width: col.Width - 10,
			Align: col.Align,
		})
		r.s.DrawText(col.LabelAlt, x+5, y+4+sz.TableHeader*r.cfg.Sizes.LineSpacing, TextOptions{
			Style: TextStyle{Size: sz.Small},
			Color: pal.OnPrimary,
			Width: col.Width - 10,
			Align: col.Align,
		})
		x += col.Width
	}
	y += l.TableHeaderHeight

	limitY := r.s.PageHeight() - m.Bottom - l.FooterHeight - l.SignatureHeight
	overflowWarned := false

	rowStyle := TextStyle{Size: sz.TableRow}
	for i, item := range r.doc.LineItems {
		if !overflowWarned && y+l.TableRowHeight > limitY {
			r.log.Warn("line items overflow the safe content area",
				zap.String("document", r.doc.Metadata.Number),
				zap.Int("row", i+1),
				zap.Int("rows_total", len(r.doc.LineItems)))
			r.overflow = true
			overflowWarned = true
		}

		if i%2 == 0 {
			r.s.FillRect(m.Left, y, bodyW, l.TableRowHeight, pal.RowBand)
		}

		cellY := y + (l.TableRowHeight-sz.TableRow*r.cfg.Sizes.LineSpacing)/2
		x = m.Left
		for _, col := range cols {
			r.s.DrawText(r.cellValue(col, i, item), x+5, cellY, TextOptions{
				Style: rowStyle,
				Color: pal.TextDark,
				Width: col.Width - 10,
				Align: col.Align,
			})
			x += col.Width
		}
		y += l.TableRowHeight
	}

	r.s.StrokeLine(m.Left, y, m.Left+bodyW, y, pal.RuleMed, 1, nil)
	return y + l.SectionGap, nil
}

func (r *run) cellValue(col Column, idx int, item document.LineItem) string {
	switch col.Key {
	case ColIndex:
		return strconv.Itoa(idx + 1)
	case ColDescription:
		desc := item.Description
		if item.Code != "" {
			desc = item.Code + " - " + desc
		}
		return r.fitToWidth(desc, TextStyle{Size: r.cfg.Sizes.TableRow}, col.Width-10)
	case ColQuantity:
		return r.fmtr.Qty(item.Quantity)
	case ColUnit:
		return item.Unit
	case ColUnitPrice:
		return r.fmtr.Money(item.UnitPrice)
	case ColDiscount:
		return r.fmtr.Money(item.Discount)
	case ColAmount:
		return r.fmtr.Money(lineAmount(item))
	}
	return ""
}

// lineAmount trusts a caller-supplied amount over the arithmetic product.
// The business layer may price rows in ways the engine cannot reconstruct
// (bundle pricing, rounding policy), so the computed value is only a
// fallback for rows the caller left at zero.
func lineAmount(item document.LineItem) float64 {
	if item.Amount != 0 {
		return item.Amount
	}
	return item.Quantity*item.UnitPrice - item.Discount
}

// fitToWidth ellipsizes text to a single line of at most maxW points.
func (r *run) fitToWidth(text string, style TextStyle, maxW float64) string {
	if r.s.MeasureText(text, style, 0).W <= maxW {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if r.s.MeasureText(candidate, style, 0).W <= maxW {
			return candidate
		}
	}
	return "…"
}
