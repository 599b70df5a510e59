package document

import "time"

// Kind selects the section set, palette and numbering prefix of a document.
type Kind string

const (
	KindInvoice       Kind = "invoice"
	KindCreditNote    Kind = "credit_note"
	KindReceipt       Kind = "receipt"
	KindPurchaseOrder Kind = "purchase_order"
	KindContract      Kind = "contract"
)

// Valid reports whether k is one of the known document kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindInvoice, KindCreditNote, KindReceipt, KindPurchaseOrder, KindContract:
		return true
	}
	return false
}

// Status is the document sub-type shown in the header badge area.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusApproved  Status = "approved"
	StatusPending   Status = "pending"
	StatusOriginal  Status = "original"
	StatusCancelled Status = "cancelled"
)

// TaxType describes how the caller computed the tax lines in Totals.
// The engine only lays totals out; it never applies tax policy itself.
type TaxType string

const (
	TaxNone      TaxType = "none"
	TaxInclusive TaxType = "inclusive"
	TaxExclusive TaxType = "exclusive"
)

// Metadata carries per-document identity and free text.
type Metadata struct {
	Number      string
	IssueDate   time.Time
	Status      Status
	Reference   string
	CreditTerm  string
	Salesperson string
	ContactName string
	ProjectName string
	Terms       string
	Notes       string
}

// Issuer is the company emitting the document.
type Issuer struct {
	Name    string
	Address string
	TaxID   string
	Phone   string

	// LogoRef is an asset reference (data URI, URL or path); Logo holds the
	// resolved bytes once asset fetching has run. A nil Logo is valid.
	LogoRef string
	Logo    []byte
}

// Address is the structured counterparty address used by Thai records. Any
// subset of fields may be set.
type Address struct {
	HouseNo     string
	Village     string
	SubDistrict string
	District    string
	Province    string
	PostalCode  string
}

// Counterparty is the customer or supplier the document is addressed to.
type Counterparty struct {
	Name    string
	TaxID   string
	Phone   string
	Address string
	// StructuredAddress, when present, takes precedence over Address and is
	// joined into a display string by the assembler.
	StructuredAddress *Address
}

// LineItem is one printed table row. Amount is trusted when supplied by the
// caller; see Document for the trust boundary.
type LineItem struct {
	Code        string
	Description string
	Quantity    float64
	Unit        string
	UnitPrice   float64
	Discount    float64
	Amount      float64
}

// Totals carries the caller-computed money summary. AmountInWords is supplied
// pre-computed; the engine never converts numbers to words.
type Totals struct {
	Subtotal       float64
	DiscountAmount float64
	AfterDiscount  float64
	TaxType        TaxType
	TaxRate        float64
	TaxAmount      float64
	GrandTotal     float64
	AmountInWords  string
}

// SignatureSlotCount is the fixed number of signature columns on every kind.
const SignatureSlotCount = 3

// SignatureSlot is one signature column. A nil Image renders as a dashed
// placeholder line.
type SignatureSlot struct {
	Label    string // primary-language label, e.g. ผู้จัดทำ
	LabelAlt string // secondary-language label, e.g. Issued By
	Name     string
	Role     string
	Date     string // pre-formatted by the caller; falls back to the issue date

	ImageRef string
	Image    []byte
}

// CreditNoteDetails is the extra section set carried only by credit notes.
type CreditNoteDetails struct {
	ReasonCode   string
	ReasonDetail string
	RefundMethod string
	RefundDate   time.Time
	RefundAmount float64
}

// Document is the normalized, read-only description of one printable
// artifact. It is built once per render by the assembler, consumed
// synchronously by the layout engine, and never mutated by renderers.
type Document struct {
	Kind   Kind
	Locale string

	Metadata     Metadata
	Issuer       Issuer
	Counterparty Counterparty

	// LineItems render in this exact order; the 1-based row index is derived
	// at draw time, never stored.
	LineItems []LineItem

	Totals     Totals
	Signatures [SignatureSlotCount]SignatureSlot

	// CreditNote is non-nil only for KindCreditNote documents that carry a
	// reason or refund section.
	CreditNote *CreditNoteDetails
}
