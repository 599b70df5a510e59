package render

import (
	"testing"

	"github.com/smallbiznis/papermill/internal/document"
)

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#3498DB")
	if err != nil {
		t.Fatalf("ParseHex: %v", err)
	}
	if c != (RGB{R: 0x34, G: 0x98, B: 0xDB}) {
		t.Fatalf("ParseHex = %+v", c)
	}

	for _, bad := range []string{"", "3498DB", "#34", "#GGGGGG"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("ParseHex(%q) accepted invalid input", bad)
		}
	}
}

func TestFilenameNeverDoublePrefixes(t *testing.T) {
	style := kindStyles[document.KindCreditNote]
	cases := map[string]string{
		"CN-2026-001": "CN-2026-001.pdf",
		"2026-001":    "CN-2026-001.pdf",
		"":            "CN-document.pdf",
	}
	for number, want := range cases {
		if got := style.Filename(number); got != want {
			t.Errorf("Filename(%q) = %q, want %q", number, got, want)
		}
	}
}

func TestStyleForUnknownKindFallsBack(t *testing.T) {
	style := StyleFor(document.Kind("mystery"), DefaultConfig())
	if style.Kind != document.KindInvoice {
		t.Fatalf("fallback style = %s", style.Kind)
	}
}

func TestStyleForAppliesThemeOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Palettes = map[document.Kind]PaletteOverride{
		document.KindInvoice: {PrimaryHex: "#101010", HighlightHex: "not-a-color"},
	}
	style := StyleFor(document.KindInvoice, cfg)
	if style.Palette.Primary != (RGB{R: 0x10, G: 0x10, B: 0x10}) {
		t.Fatalf("primary override not applied: %+v", style.Palette.Primary)
	}
	// Invalid override colors keep the built-in palette.
	if style.Palette.Highlight != kindStyles[document.KindInvoice].Palette.Highlight {
		t.Fatal("invalid highlight override must be ignored")
	}
}

func TestColumnWidthsFillBody(t *testing.T) {
	cfg := DefaultConfig()
	bodyW := cfg.BodyWidth()
	for kind, style := range kindStyles {
		var sum float64
		for _, col := range style.Columns {
			sum += col.Width
		}
		if sum > bodyW {
			t.Errorf("kind %s: columns %.1f wider than body %.1f", kind, sum, bodyW)
		}
	}
}
