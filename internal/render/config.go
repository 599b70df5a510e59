package render

import (
	"fmt"
	"strconv"
	"time"

	"github.com/smallbiznis/papermill/internal/document"
)

// RGB is a 24-bit color. The zero value is black.
type RGB struct {
	R, G, B int
}

// ParseHex parses "#RRGGBB" into an RGB, returning an error for anything else.
func ParseHex(s string) (RGB, error) {
	if len(s) != 7 || s[0] != '#' {
		return RGB{}, fmt.Errorf("invalid_color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid_color %q", s)
	}
	return RGB{R: int(v >> 16), G: int(v >> 8 & 0xFF), B: int(v & 0xFF)}, nil
}

func mustHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Margins are page margins in points.
type Margins struct {
	Top, Bottom, Left, Right float64
}

// PageConfig fixes the drawing surface geometry. A4 portrait in points.
type PageConfig struct {
	Width   float64
	Height  float64
	Margins Margins
}

// FontConfig names the TTF pair registered for body text. When the files are
// absent the surface falls back to the built-in Helvetica family, which is
// metrically close enough that section heights stay stable.
type FontConfig struct {
	Dir     string
	Family  string
	Regular string
	Bold    string
}

// SizeConfig holds the type scale in points.
type SizeConfig struct {
	Heading1    float64
	Heading2    float64
	Heading3    float64
	Body        float64
	Label       float64
	Small       float64
	TableHeader float64
	TableRow    float64
	LineSpacing float64
}

// LayoutConfig holds the fixed vertical metrics the planner reserves space
// with. All values are points.
type LayoutConfig struct {
	LogoWidth      float64
	BadgeWidth     float64
	BadgeMinHeight float64

	SectionGap    float64
	HeaderRuleGap float64
	LabelWidth    float64
	ValueIndent   float64

	TableHeaderHeight float64
	TableRowHeight    float64

	SummaryWidthRatio     float64
	SummaryRowHeight      float64
	SummaryHighlightExtra float64
	// SummaryHeightEstimate is deliberately a constant: the totals block's
	// shape does not vary with data, so the planner can reserve for it
	// without measuring.
	SummaryHeightEstimate float64

	SignatureHeight         float64
	SignatureBaselineOffset float64
	SignatureImageHeight    float64

	FooterHeight float64
	FooterOffset float64

	SpacingAfterTable       float64
	SpacingBeforeSignatures float64
	SafetyMargin            float64
	TermsGap                float64
}

// PaletteOverride carries per-tenant theme colors loaded from the optional
// TOML theme file.
type PaletteOverride struct {
	PrimaryHex   string
	AccentHex    string
	HighlightHex string
}

// RenderConfig is the full engine configuration, passed by value into the
// engine at construction so concurrent renders share no mutable state.
type RenderConfig struct {
	Page   PageConfig
	Font   FontConfig
	Sizes  SizeConfig
	Layout LayoutConfig

	// FooterText is the fixed trailer drawn on every page.
	FooterText string

	// CreationDate pins the PDF creation date for byte-identical output.
	// When zero the engine derives it from the document's issue date.
	CreationDate time.Time

	// Palettes overrides kind palettes by document kind.
	Palettes map[document.Kind]PaletteOverride
}

// DefaultConfig returns the stock A4 configuration.
func DefaultConfig() RenderConfig {
	return RenderConfig{
		Page: PageConfig{
			Width:  595.28,
			Height: 841.89,
			Margins: Margins{
				Top: 20, Bottom: 45, Left: 45, Right: 45,
			},
		},
		Font: FontConfig{
			Dir:     "fonts",
			Family:  "THSarabun",
			Regular: "THSarabunNew.ttf",
			Bold:    "THSarabunNew Bold.ttf",
		},
		Sizes: SizeConfig{
			Heading1:    24,
			Heading2:    16,
			Heading3:    14,
			Body:        12,
			Label:       11,
			Small:       10,
			TableHeader: 12,
			TableRow:    11,
			LineSpacing: 1.25,
		},
		Layout: LayoutConfig{
			LogoWidth:      130,
			BadgeWidth:     170,
			BadgeMinHeight: 60,

			SectionGap:    15,
			HeaderRuleGap: 10,
			LabelWidth:    100,
			ValueIndent:   10,

			TableHeaderHeight: 35,
			TableRowHeight:    30,

			SummaryWidthRatio:     0.5,
			SummaryRowHeight:      25,
			SummaryHighlightExtra: 10,
			SummaryHeightEstimate: 145,

			SignatureHeight:         70,
			SignatureBaselineOffset: 25,
			SignatureImageHeight:    50,

			FooterHeight: 25,
			FooterOffset: 15,

			SpacingAfterTable:       15,
			SpacingBeforeSignatures: 110,
			SafetyMargin:            20,
			TermsGap:                8,
		},
		FooterText: "*** เอกสารนี้ออกโดยระบบอิเล็กทรอนิกส์ ***",
	}
}

// BodyWidth is the usable width between the left and right margins.
func (c RenderConfig) BodyWidth() float64 {
	return c.Page.Width - c.Page.Margins.Left - c.Page.Margins.Right
}

// Palette is the color set of one document kind.
type Palette struct {
	Primary   RGB // badge fill, table header band, section headings
	Accent    RGB // rules and emphasis strokes
	Text      RGB
	TextDark  RGB
	TextMuted RGB
	RuleLight RGB
	RuleMed   RGB
	RowBand   RGB // alternating table row fill
	Highlight RGB // grand-total row fill
	OnPrimary RGB // text drawn over Primary fills
}

func basePalette(primary, accent, highlight RGB) Palette {
	return Palette{
		Primary:   primary,
		Accent:    accent,
		Text:      mustHex("#1A1A1A"),
		TextDark:  mustHex("#2C2C2C"),
		TextMuted: mustHex("#666666"),
		RuleLight: mustHex("#E8E8E8"),
		RuleMed:   mustHex("#D0D0D0"),
		RowBand:   mustHex("#FAFAFA"),
		Highlight: highlight,
		OnPrimary: mustHex("#FFFFFF"),
	}
}

// ColumnKey identifies what a table column renders.
type ColumnKey string

const (
	ColIndex       ColumnKey = "index"
	ColDescription ColumnKey = "description"
	ColQuantity    ColumnKey = "quantity"
	ColUnit        ColumnKey = "unit"
	ColUnitPrice   ColumnKey = "unit_price"
	ColDiscount    ColumnKey = "discount"
	ColAmount      ColumnKey = "amount"
)

// Column is one fixed-width table column with its bilingual header labels.
type Column struct {
	Key      ColumnKey
	Label    string
	LabelAlt string
	Width    float64
	Align    Align
}

// KindStyle is the per-kind configuration record consumed by the shared
// planner: palette, titles, numbering prefix and table column layout.
type KindStyle struct {
	Kind         document.Kind
	Title        string
	TitleAlt     string
	NumberPrefix string
	Palette      Palette
	Columns      []Column
}

// Filename derives the suggested download name, never double-prefixing a
// number that already carries the kind prefix.
func (s KindStyle) Filename(number string) string {
	name := number
	if name == "" {
		name = "document"
	}
	prefix := s.NumberPrefix + "-"
	if len(name) < len(prefix) || name[:len(prefix)] != prefix {
		name = prefix + name
	}
	return name + ".pdf"
}

func discountColumns() []Column {
	return []Column{
		{Key: ColIndex, Label: "ลำดับ", LabelAlt: "No", Width: 35, Align: AlignCenter},
		{Key: ColDescription, Label: "รายการ", LabelAlt: "Description", Width: 185, Align: AlignLeft},
		{Key: ColQuantity, Label: "จำนวน", LabelAlt: "Qty", Width: 40, Align: AlignCenter},
		{Key: ColUnit, Label: "หน่วย", LabelAlt: "Unit", Width: 45, Align: AlignCenter},
		{Key: ColUnitPrice, Label: "ราคา/หน่วย", LabelAlt: "Unit Price", Width: 70, Align: AlignRight},
		{Key: ColDiscount, Label: "ส่วนลด", LabelAlt: "Discount", Width: 55, Align: AlignRight},
		{Key: ColAmount, Label: "จำนวนเงิน", LabelAlt: "Amount", Width: 75, Align: AlignRight},
	}
}

func plainColumns() []Column {
	return []Column{
		{Key: ColIndex, Label: "ลำดับ", LabelAlt: "No", Width: 40, Align: AlignCenter},
		{Key: ColDescription, Label: "รายการ", LabelAlt: "Description", Width: 210, Align: AlignLeft},
		{Key: ColQuantity, Label: "จำนวน", LabelAlt: "Qty", Width: 50, Align: AlignCenter},
		{Key: ColUnit, Label: "หน่วย", LabelAlt: "Unit", Width: 50, Align: AlignCenter},
		{Key: ColUnitPrice, Label: "ราคา/หน่วย", LabelAlt: "Unit Price", Width: 75, Align: AlignRight},
		{Key: ColAmount, Label: "จำนวนเงิน", LabelAlt: "Amount", Width: 80, Align: AlignRight},
	}
}

var kindStyles = map[document.Kind]KindStyle{
	document.KindInvoice: {
		Kind:         document.KindInvoice,
		Title:        "ใบแจ้งหนี้",
		TitleAlt:     "INVOICE",
		NumberPrefix: "INV",
		Palette:      basePalette(mustHex("#3498DB"), mustHex("#2C81B0"), mustHex("#EAF4FB")),
		Columns:      discountColumns(),
	},
	document.KindCreditNote: {
		Kind:         document.KindCreditNote,
		Title:        "ใบลดหนี้",
		TitleAlt:     "CREDIT NOTE",
		NumberPrefix: "CN",
		Palette:      basePalette(mustHex("#DC143C"), mustHex("#DAA520"), mustHex("#FFF8DC")),
		Columns:      plainColumns(),
	},
	document.KindReceipt: {
		Kind:         document.KindReceipt,
		Title:        "ใบเสร็จรับเงิน",
		TitleAlt:     "RECEIPT",
		NumberPrefix: "RE",
		Palette:      basePalette(mustHex("#27AE60"), mustHex("#16A085"), mustHex("#EAFBF1")),
		Columns:      plainColumns(),
	},
	document.KindPurchaseOrder: {
		Kind:         document.KindPurchaseOrder,
		Title:        "ใบสั่งซื้อ",
		TitleAlt:     "PURCHASE ORDER",
		NumberPrefix: "PO",
		Palette:      basePalette(mustHex("#34495E"), mustHex("#7F8C8D"), mustHex("#ECF0F1")),
		Columns:      discountColumns(),
	},
	document.KindContract: {
		Kind:         document.KindContract,
		Title:        "สัญญา",
		TitleAlt:     "CONTRACT",
		NumberPrefix: "CT",
		Palette:      basePalette(mustHex("#2C3E50"), mustHex("#95A5A6"), mustHex("#F4F6F7")),
		Columns:      plainColumns(),
	},
}

// StyleFor resolves the per-kind style, applying any theme overrides from the
// config. Unknown kinds fall back to the invoice style.
func StyleFor(kind document.Kind, cfg RenderConfig) KindStyle {
	style, ok := kindStyles[kind]
	if !ok {
		style = kindStyles[document.KindInvoice]
	}
	if over, ok := cfg.Palettes[kind]; ok {
		if c, err := ParseHex(over.PrimaryHex); err == nil {
			style.Palette.Primary = c
		}
		if c, err := ParseHex(over.AccentHex); err == nil {
			style.Palette.Accent = c
		}
		if c, err := ParseHex(over.HighlightHex); err == nil {
			style.Palette.Highlight = c
		}
	}
	return style
}
