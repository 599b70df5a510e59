package render

import (
	"math"

	"github.com/smallbiznis/papermill/internal/document"
)

// labeledField is the stacked label / sub-label / value triple that recurs
// across the engine: primary-language label in bold, secondary-language
// label small and muted below it, value indented to the right of the label
// block. The field height is the taller of the label block and the value.
type labeledField struct {
	Label    string
	LabelAlt string
	Value    string

	// ValueColor overrides the default value color when non-nil.
	ValueColor *RGB
}

// drawLabeledField renders one field inside a column of width colW and
// returns the consumed height including trailing spacing.
func (r *run) drawLabeledField(x, y, colW float64, f labeledField) float64 {
	sz := r.cfg.Sizes
	pal := r.style.Palette
	labelW := r.cfg.Layout.LabelWidth
	indent := r.cfg.Layout.ValueIndent

	h1 := r.s.DrawText(f.Label, x, y, TextOptions{
		Style: TextStyle{Bold: true, Size: sz.Body},
		Color: pal.Text,
		Width: labelW,
	})
	h2 := r.s.DrawText(f.LabelAlt, x, y+h1*0.8, TextOptions{
		Style: TextStyle{Size: sz.Label},
		Color: pal.TextMuted,
		Width: labelW,
	})
	labelBlockH := h1*0.8 + h2

	value := f.Value
	if value == "" {
		value = "-"
	}
	valueColor := pal.TextDark
	if f.ValueColor != nil {
		valueColor = *f.ValueColor
	}
	valueW := colW - labelW - indent
	valueH := r.s.DrawText(value, x+labelW+indent, y, TextOptions{
		Style: TextStyle{Size: sz.Body},
		Color: valueColor,
		Width: valueW,
	})

	return math.Max(labelBlockH, valueH) + sz.Body*0.7
}

// drawPartyInfo renders the two-column block below the header: counterparty
// fields on the left, document metadata on the right. Column heights
// accumulate independently; a horizontal rule closes the section at the
// taller column's bottom.
func (r *run) drawPartyInfo(startY float64) (float64, error) {
	m := r.s.Margins()
	bodyW := r.s.BodyWidth()
	pal := r.style.Palette

	leftX := m.Left
	leftW := bodyW*0.55 - 10
	rightX := m.Left + bodyW*0.55 + 10
	rightW := bodyW*0.45 - 10

	cp := r.doc.Counterparty
	leftFields := []labeledField{
		{Label: "ชื่อลูกค้า", LabelAlt: "Customer Name", Value: cp.Name},
		{Label: "เลขผู้เสียภาษี", LabelAlt: "Tax ID", Value: cp.TaxID},
		{Label: "ที่อยู่", LabelAlt: "Address", Value: cp.Address},
		{Label: "โทร.", LabelAlt: "Tel.", Value: cp.Phone},
	}

	md := r.doc.Metadata
	statusField := labeledField{Label: "สถานะ", LabelAlt: "Status", Value: statusLabel(md.Status)}
	if md.Status == document.StatusCancelled {
		statusField.ValueColor = &pal.Accent
	}
	rightFields := []labeledField{
		{Label: "วันที่", LabelAlt: "Issue Date", Value: ThaiDate(md.IssueDate)},
		{Label: "การชำระเงิน", LabelAlt: "Credit Term", Value: md.CreditTerm},
		{Label: "พนักงานขาย", LabelAlt: "Salesman", Value: md.Salesperson},
		statusField,
	}
	if md.Reference != "" {
		rightFields = append(rightFields, labeledField{Label: "อ้างอิง", LabelAlt: "Reference", Value: md.Reference})
	}
	if md.ContactName != "" {
		rightFields = append(rightFields, labeledField{Label: "ผู้ติดต่อ", LabelAlt: "Contact", Value: md.ContactName})
	}
	if md.ProjectName != "" {
		rightFields = append(rightFields, labeledField{Label: "โครงการ", LabelAlt: "Project", Value: md.ProjectName})
	}

	leftY, rightY := startY, startY
	for _, f := range leftFields {
		leftY += r.drawLabeledField(leftX, leftY, leftW, f)
	}
	for _, f := range rightFields {
		rightY += r.drawLabeledField(rightX, rightY, rightW, f)
	}

	bottom := math.Max(leftY, rightY)
	r.s.StrokeLine(m.Left, bottom+5, m.Left+bodyW, bottom+5, pal.RuleLight, 0.5, nil)
	return bottom + 10, nil
}
