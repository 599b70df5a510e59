package render

// Credit-note only sections. Both render from Document.CreditNote, which the
// engine has already checked for nil before dispatching here.

// drawCreditReason renders the adjustment-reason block between the party
// info and the items table. Reason codes map to Thai labels; unknown codes
// print verbatim so nothing the caller recorded is silently lost.
func (r *run) drawCreditReason(startY float64) (float64, error) {
	cn := r.doc.CreditNote
	pal := r.style.Palette
	m := r.s.Margins()

	y := startY + r.drawSectionHeading("เหตุผลในการลดหนี้", startY)

	y += r.drawLabeledField(m.Left, y, r.s.BodyWidth(), labeledField{
		Label:    "เหตุผล",
		LabelAlt: "Reason",
		Value:    reasonLabel(cn.ReasonCode),
	})
	if cn.ReasonDetail != "" {
		y += r.drawLabeledField(m.Left, y, r.s.BodyWidth(), labeledField{
			Label:    "รายละเอียด",
			LabelAlt: "Detail",
			Value:    cn.ReasonDetail,
		})
	}

	r.s.StrokeLine(m.Left, y+2, m.Left+r.s.BodyWidth(), y+2, pal.RuleLight, 0.5, nil)
	return y + r.cfg.Layout.SectionGap*0.6, nil
}

// drawRefundDetails renders the refund method, date and amount for credit
// notes that settle in money rather than as an outstanding credit.
func (r *run) drawRefundDetails(startY float64) (float64, error) {
	cn := r.doc.CreditNote
	pal := r.style.Palette
	m := r.s.Margins()
	bodyW := r.s.BodyWidth()

	y := startY + r.drawSectionHeading("การคืนเงิน", startY)

	colW := bodyW / 3
	h := r.drawLabeledField(m.Left, y, colW, labeledField{
		Label:    "วิธีการคืนเงิน",
		LabelAlt: "Refund Method",
		Value:    refundMethodLabel(cn.RefundMethod),
	})
	h2 := r.drawLabeledField(m.Left+colW, y, colW, labeledField{
		Label:    "วันที่คืนเงิน",
		LabelAlt: "Refund Date",
		Value:    ThaiDate(cn.RefundDate),
	})
	if h2 > h {
		h = h2
	}
	if cn.RefundAmount > 0 {
		h3 := r.drawLabeledField(m.Left+2*colW, y, colW, labeledField{
			Label:    "จำนวนเงินที่คืน",
			LabelAlt: "Refund Amount",
			Value:    r.moneyWithUnit(cn.RefundAmount),
		})
		if h3 > h {
			h = h3
		}
	}
	y += h

	r.s.StrokeLine(m.Left, y+2, m.Left+bodyW, y+2, pal.RuleLight, 0.5, nil)
	return y + r.cfg.Layout.SectionGap*0.6, nil
}

// drawSectionHeading draws a small primary-colored heading with a short
// accent underline and returns the consumed height.
func (r *run) drawSectionHeading(title string, y float64) float64 {
	sz := r.cfg.Sizes
	pal := r.style.Palette
	m := r.s.Margins()

	h := r.s.DrawText(title, m.Left, y, TextOptions{
		Style: TextStyle{Bold: true, Size: sz.Heading3},
		Color: pal.Primary,
	})
	r.s.StrokeLine(m.Left, y+h+1, m.Left+120, y+h+1, pal.Accent, 1.5, nil)
	return h + 8
}
