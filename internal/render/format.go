package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/smallbiznis/papermill/internal/document"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// formatter renders numbers and dates in the document's locale. Dates use the
// Buddhist calendar year offset; both are pure formatting over caller data.
type formatter struct {
	printer *message.Printer
}

func newFormatter(locale string) formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Thai
	}
	return formatter{printer: message.NewPrinter(tag)}
}

// Money formats with grouped thousands and exactly two decimals.
func (f formatter) Money(v float64) string {
	return f.printer.Sprint(number.Decimal(v, number.Scale(2)))
}

// Qty drops trailing zeros so whole quantities print without decimals.
func (f formatter) Qty(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

var thaiMonths = [12]string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

// ThaiDate renders "<day> <month> <พ.ศ. year>". Zero time renders "-".
func ThaiDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%d %s %d", t.Day(), thaiMonths[t.Month()-1], t.Year()+543)
}

var statusLabels = map[document.Status]string{
	document.StatusDraft:     "ฉบับร่าง",
	document.StatusApproved:  "อนุมัติแล้ว",
	document.StatusPending:   "รอดำเนินการ",
	document.StatusOriginal:  "ต้นฉบับ",
	document.StatusCancelled: "ยกเลิก",
}

func statusLabel(s document.Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

var reasonLabels = map[string]string{
	"cancelled_order":   "ยกเลิกการสั่งซื้อ",
	"defective_product": "สินค้าชำรุด/มีปัญหา",
	"wrong_product":     "ส่งสินค้าผิด",
	"price_adjustment":  "ปรับปรุงราคา",
	"other":             "อื่นๆ",
}

func reasonLabel(code string) string {
	if label, ok := reasonLabels[code]; ok {
		return label
	}
	if code == "" {
		return "-"
	}
	return code
}

var refundMethodLabels = map[string]string{
	"cash":        "เงินสด",
	"transfer":    "โอนเงิน",
	"check":       "เช็คธนาคาร",
	"credit_card": "บัตรเครดิต",
}

func refundMethodLabel(code string) string {
	if label, ok := refundMethodLabels[code]; ok {
		return label
	}
	if code == "" {
		return "-"
	}
	return code
}
