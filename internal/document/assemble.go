package document

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidKind   = errors.New("invalid_kind")
	ErrMissingNumber = errors.New("missing_number")
)

// RenderRequest is the caller-shaped payload a render is assembled from. It
// mirrors what the business layer stores: optional fields everywhere, amounts
// pre-computed, image assets referenced rather than embedded.
type RenderRequest struct {
	Kind   Kind
	Locale string

	Metadata     Metadata
	Issuer       Issuer
	Counterparty Counterparty
	LineItems    []LineItem
	Totals       Totals
	Signatures   []SignatureSlot
	CreditNote   *CreditNoteDetails
}

// defaultSlots are the three signature columns every document carries, in
// print order: counterparty, preparer, approver.
var defaultSlots = [SignatureSlotCount]SignatureSlot{
	{Label: "ผู้รับเอกสาร", LabelAlt: "Received By"},
	{Label: "ผู้จัดทำ", LabelAlt: "Issued By"},
	{Label: "ผู้อนุมัติ", LabelAlt: "Approved By"},
}

const defaultUnit = "ชิ้น"

// Assemble normalizes a caller payload into the Document consumed by the
// layout engine, applying defaults for missing optional fields. It does not
// validate money arithmetic: caller-supplied line amounts and totals are a
// documented trust boundary and pass through untouched.
func Assemble(req RenderRequest) (*Document, error) {
	if !req.Kind.Valid() {
		return nil, ErrInvalidKind
	}
	if strings.TrimSpace(req.Metadata.Number) == "" {
		return nil, ErrMissingNumber
	}

	doc := &Document{
		Kind:     req.Kind,
		Locale:   strings.TrimSpace(req.Locale),
		Metadata: req.Metadata,
		Issuer:   req.Issuer,
		Totals:   req.Totals,
	}
	if doc.Locale == "" {
		doc.Locale = "th"
	}
	doc.Metadata.Number = strings.TrimSpace(doc.Metadata.Number)
	if doc.Metadata.Status == "" {
		doc.Metadata.Status = StatusOriginal
	}

	doc.Counterparty = req.Counterparty
	if doc.Counterparty.StructuredAddress != nil {
		doc.Counterparty.Address = doc.Counterparty.StructuredAddress.Display()
	}
	if strings.TrimSpace(doc.Counterparty.Name) == "" {
		doc.Counterparty.Name = "-"
	}

	doc.LineItems = make([]LineItem, len(req.LineItems))
	for i, item := range req.LineItems {
		if strings.TrimSpace(item.Description) == "" {
			item.Description = "-"
		}
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		if strings.TrimSpace(item.Unit) == "" {
			item.Unit = defaultUnit
		}
		doc.LineItems[i] = item
	}

	if doc.Totals.AfterDiscount == 0 && (doc.Totals.Subtotal != 0 || doc.Totals.DiscountAmount != 0) {
		doc.Totals.AfterDiscount = doc.Totals.Subtotal - doc.Totals.DiscountAmount
	}
	if doc.Totals.TaxType == "" {
		doc.Totals.TaxType = TaxNone
	}

	doc.Signatures = defaultSlots
	for i := 0; i < len(req.Signatures) && i < SignatureSlotCount; i++ {
		slot := req.Signatures[i]
		if slot.Label == "" {
			slot.Label = defaultSlots[i].Label
		}
		if slot.LabelAlt == "" {
			slot.LabelAlt = defaultSlots[i].LabelAlt
		}
		doc.Signatures[i] = slot
	}

	if req.Kind == KindCreditNote {
		doc.CreditNote = req.CreditNote
	}
	return doc, nil
}

// Display joins the structured address into a single line with Thai
// particles, skipping empty parts.
func (a *Address) Display() string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, 6)
	add := func(prefix, v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		if prefix != "" {
			v = prefix + " " + v
		}
		parts = append(parts, v)
	}
	add("", a.HouseNo)
	add("หมู่", a.Village)
	add("ตำบล", a.SubDistrict)
	add("อำเภอ", a.District)
	add("จังหวัด", a.Province)
	add("", a.PostalCode)
	return strings.Join(parts, " ")
}

// AssetRefs lists every image reference a document may need, logo first then
// the signature slots in order. Entries may be empty.
func (d *Document) AssetRefs() []string {
	refs := make([]string, 0, 1+SignatureSlotCount)
	refs = append(refs, d.Issuer.LogoRef)
	for _, slot := range d.Signatures {
		refs = append(refs, slot.ImageRef)
	}
	return refs
}

// AttachAssets stores resolved image bytes in ref order produced by
// AssetRefs. Nil entries leave the corresponding image absent.
func (d *Document) AttachAssets(images [][]byte) {
	if len(images) == 0 {
		return
	}
	d.Issuer.Logo = images[0]
	for i := 0; i < SignatureSlotCount && i+1 < len(images); i++ {
		d.Signatures[i].Image = images[i+1]
	}
}

// FallbackSignatureDate returns the date printed under a signature column
// when the slot carries none. Derived from document metadata, never from the
// clock, so repeated renders stay byte-identical.
func (d *Document) FallbackSignatureDate() time.Time {
	return d.Metadata.IssueDate
}
