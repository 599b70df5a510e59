package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/smallbiznis/papermill/internal/document"
)

type summaryRow struct {
	Label     string
	Value     string
	Bold      bool
	Highlight bool
}

// drawSummary renders the totals column on the right with the grand-total
// row emphasized, beside the amount-in-words band on the left. The words
// text arrives pre-computed from the caller; the engine only lays it out.
func (r *run) drawSummary(startY float64) (float64, error) {
	l := r.cfg.Layout
	sz := r.cfg.Sizes
	pal := r.style.Palette
	m := r.s.Margins()
	bodyW := r.s.BodyWidth()

	sumW := bodyW * l.SummaryWidthRatio
	sumX := m.Left + bodyW - sumW
	const pad = 10

	t := r.doc.Totals
	rows := []summaryRow{
		{Label: "ยอดรวม", Value: r.moneyWithUnit(t.Subtotal)},
		{Label: "ส่วนลด", Value: r.moneyWithUnit(t.DiscountAmount)},
		{Label: "ยอดหลังหักส่วนลด", Value: r.moneyWithUnit(t.AfterDiscount)},
	}
	if t.TaxType != document.TaxNone && t.TaxAmount > 0 {
		rate := t.TaxRate
		if rate == 0 {
			rate = 7
		}
		rows = append(rows, summaryRow{
			Label: fmt.Sprintf("ภาษีมูลค่าเพิ่ม %s%%", r.fmtr.Qty(rate)),
			Value: r.moneyWithUnit(t.TaxAmount),
		})
	}
	rows = append(rows, summaryRow{
		Label:     "ยอดรวมทั้งสิ้น",
		Value:     r.moneyWithUnit(t.GrandTotal),
		Bold:      true,
		Highlight: true,
	})

	y := startY
	for _, row := range rows {
		style := TextStyle{Size: sz.Body}
		color := pal.TextDark
		rowH := l.SummaryRowHeight
		if row.Highlight {
			rowH += l.SummaryHighlightExtra
			r.s.FillRect(sumX-pad, y-5, sumW+2*pad, rowH, pal.Highlight)
			style = TextStyle{Bold: true, Size: sz.Body + 2}
			color = pal.Primary
		} else if row.Bold {
			style = TextStyle{Bold: true, Size: sz.Body}
			color = pal.Text
		}
		r.s.DrawText(row.Label, sumX, y, TextOptions{
			Style: style, Color: color, Width: sumW / 2, Align: AlignLeft,
		})
		r.s.DrawText(row.Value, sumX, y, TextOptions{
			Style: style, Color: color, Width: sumW - pad, Align: AlignRight,
		})
		y += rowH
	}

	wordsBottom := startY
	if words := strings.TrimSpace(t.AmountInWords); words != "" {
		wordsW := bodyW - sumW - 2*pad
		textH := r.s.MeasureText(words, TextStyle{Bold: true, Size: sz.Body}, wordsW-2*pad).H
		boxH := math.Max(40, textH+2*pad)
		r.s.FillRect(m.Left, startY, wordsW, boxH, pal.Primary)
		r.s.DrawText(words, m.Left+pad, startY+(boxH-textH)/2, TextOptions{
			Style: TextStyle{Bold: true, Size: sz.Body},
			Color: pal.OnPrimary,
			Width: wordsW - 2*pad,
			Align: AlignCenter,
		})
		wordsBottom = startY + boxH
	}

	return math.Max(y, wordsBottom) + 5, nil
}

func (r *run) moneyWithUnit(v float64) string {
	s := r.fmtr.Money(v)
	if strings.HasPrefix(r.doc.Locale, "th") || r.doc.Locale == "" {
		s += " บาท"
	}
	return s
}
