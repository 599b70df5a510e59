package server

import (
	"strings"
	"time"

	"github.com/smallbiznis/papermill/internal/document"
)

// Wire shapes for the render endpoint. Dates travel as "2006-01-02"; money
// is numeric and pre-computed by the caller.

const wireDateLayout = "2006-01-02"

type renderAddress struct {
	HouseNo     string `json:"house_no"`
	Village     string `json:"village"`
	SubDistrict string `json:"sub_district"`
	District    string `json:"district"`
	Province    string `json:"province"`
	PostalCode  string `json:"postal_code"`
}

type renderIssuer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	TaxID   string `json:"tax_id"`
	Phone   string `json:"phone"`
	LogoRef string `json:"logo_ref"`
}

type renderCustomer struct {
	Name              string         `json:"name"`
	TaxID             string         `json:"tax_id"`
	Phone             string         `json:"phone"`
	Address           string         `json:"address"`
	StructuredAddress *renderAddress `json:"structured_address"`
}

type renderLineItem struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unit_price"`
	Discount    float64 `json:"discount"`
	Amount      float64 `json:"amount"`
}

type renderTotals struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	AfterDiscount  float64 `json:"after_discount"`
	TaxType        string  `json:"tax_type"`
	TaxRate        float64 `json:"tax_rate"`
	TaxAmount      float64 `json:"tax_amount"`
	GrandTotal     float64 `json:"grand_total"`
	AmountInWords  string  `json:"amount_in_words"`
}

type renderSignature struct {
	Label    string `json:"label"`
	LabelAlt string `json:"label_alt"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Date     string `json:"date"`
	ImageRef string `json:"image_ref"`
}

type renderCreditNote struct {
	ReasonCode   string  `json:"reason_code"`
	ReasonDetail string  `json:"reason_detail"`
	RefundMethod string  `json:"refund_method"`
	RefundDate   string  `json:"refund_date"`
	RefundAmount float64 `json:"refund_amount"`
}

type renderDocumentRequest struct {
	Kind   string `json:"kind"`
	Locale string `json:"locale"`

	Number      string `json:"number"`
	IssueDate   string `json:"issue_date"`
	Status      string `json:"status"`
	Reference   string `json:"reference"`
	CreditTerm  string `json:"credit_term"`
	Salesperson string `json:"salesperson"`
	ContactName string `json:"contact_name"`
	ProjectName string `json:"project_name"`
	Terms       string `json:"terms"`
	Notes       string `json:"notes"`

	Issuer     renderIssuer      `json:"issuer"`
	Customer   renderCustomer    `json:"customer"`
	Items      []renderLineItem  `json:"items"`
	Totals     renderTotals      `json:"totals"`
	Signatures []renderSignature `json:"signatures"`
	CreditNote *renderCreditNote `json:"credit_note"`
}

// toDomain maps the wire payload onto the assembler's request shape.
func (r renderDocumentRequest) toDomain() (document.RenderRequest, *APIError) {
	issueDate, apiErr := parseWireDate("issue_date", r.IssueDate)
	if apiErr != nil {
		return document.RenderRequest{}, apiErr
	}

	req := document.RenderRequest{
		Kind:   document.Kind(strings.TrimSpace(r.Kind)),
		Locale: r.Locale,
		Metadata: document.Metadata{
			Number:      r.Number,
			IssueDate:   issueDate,
			Status:      document.Status(r.Status),
			Reference:   r.Reference,
			CreditTerm:  r.CreditTerm,
			Salesperson: r.Salesperson,
			ContactName: r.ContactName,
			ProjectName: r.ProjectName,
			Terms:       r.Terms,
			Notes:       r.Notes,
		},
		Issuer: document.Issuer{
			Name:    r.Issuer.Name,
			Address: r.Issuer.Address,
			TaxID:   r.Issuer.TaxID,
			Phone:   r.Issuer.Phone,
			LogoRef: r.Issuer.LogoRef,
		},
		Counterparty: document.Counterparty{
			Name:    r.Customer.Name,
			TaxID:   r.Customer.TaxID,
			Phone:   r.Customer.Phone,
			Address: r.Customer.Address,
		},
		Totals: document.Totals{
			Subtotal:       r.Totals.Subtotal,
			DiscountAmount: r.Totals.DiscountAmount,
			AfterDiscount:  r.Totals.AfterDiscount,
			TaxType:        document.TaxType(r.Totals.TaxType),
			TaxRate:        r.Totals.TaxRate,
			TaxAmount:      r.Totals.TaxAmount,
			GrandTotal:     r.Totals.GrandTotal,
			AmountInWords:  r.Totals.AmountInWords,
		},
	}
	if a := r.Customer.StructuredAddress; a != nil {
		req.Counterparty.StructuredAddress = &document.Address{
			HouseNo:     a.HouseNo,
			Village:     a.Village,
			SubDistrict: a.SubDistrict,
			District:    a.District,
			Province:    a.Province,
			PostalCode:  a.PostalCode,
		}
	}

	req.LineItems = make([]document.LineItem, len(r.Items))
	for i, item := range r.Items {
		req.LineItems[i] = document.LineItem{
			Code:        item.Code,
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			Amount:      item.Amount,
		}
	}

	req.Signatures = make([]document.SignatureSlot, len(r.Signatures))
	for i, slot := range r.Signatures {
		req.Signatures[i] = document.SignatureSlot{
			Label:    slot.Label,
			LabelAlt: slot.LabelAlt,
			Name:     slot.Name,
			Role:     slot.Role,
			Date:     slot.Date,
			ImageRef: slot.ImageRef,
		}
	}

	if cn := r.CreditNote; cn != nil {
		refundDate, apiErr := parseWireDate("credit_note.refund_date", cn.RefundDate)
		if apiErr != nil {
			return document.RenderRequest{}, apiErr
		}
		req.CreditNote = &document.CreditNoteDetails{
			ReasonCode:   cn.ReasonCode,
			ReasonDetail: cn.ReasonDetail,
			RefundMethod: cn.RefundMethod,
			RefundDate:   refundDate,
			RefundAmount: cn.RefundAmount,
		}
	}
	return req, nil
}

func parseWireDate(field, value string) (time.Time, *APIError) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(wireDateLayout, value)
	if err != nil {
		return time.Time{}, newValidationError(field, "invalid_date", "date must be YYYY-MM-DD")
	}
	return t, nil
}
