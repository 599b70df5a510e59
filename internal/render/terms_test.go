package render

import (
	"strings"
	"testing"
)

func TestDrawTermsFitsWithoutClipping(t *testing.T) {
	doc := invoiceDoc()
	doc.Metadata.Terms = "ชำระภายใน 30 วัน"
	s := newFakeSurface()
	r := newTestRun(doc, s)

	endY, err := r.drawTerms(500, 200)
	if err != nil {
		t.Fatalf("drawTerms: %v", err)
	}
	if endY <= 500 {
		t.Fatal("terms did not advance")
	}
	if r.termsClipped {
		t.Fatal("short terms must not clip")
	}
	if _, ok := s.textContaining("หมายเหตุ"); !ok {
		t.Fatal("remarks label missing")
	}
	if _, ok := s.textContaining("ชำระภายใน 30 วัน"); !ok {
		t.Fatal("terms text missing")
	}
}

func TestDrawTermsClipsWithEllipsis(t *testing.T) {
	doc := invoiceDoc()
	doc.Metadata.Terms = strings.Repeat("เงื่อนไขการรับประกันสินค้า ", 100)
	s := newFakeSurface()
	r := newTestRun(doc, s)

	if _, err := r.drawTerms(500, 80); err != nil {
		t.Fatalf("drawTerms: %v", err)
	}
	if !r.termsClipped {
		t.Fatal("long terms must set the clipped flag")
	}

	var drawn string
	for _, op := range s.texts {
		if strings.HasPrefix(op.Text, "เงื่อนไข") {
			drawn = op.Text
		}
	}
	if drawn == "" {
		t.Fatal("clipped terms text missing")
	}
	if !strings.HasSuffix(drawn, "…") {
		t.Fatal("clipped terms must end with an ellipsis")
	}
	if len([]rune(drawn)) >= len([]rune(doc.Metadata.Terms)) {
		t.Fatal("clipped terms must be shorter than the original")
	}
}

func TestDrawTermsEmptyIsNoop(t *testing.T) {
	doc := invoiceDoc()
	doc.Metadata.Terms = ""
	doc.Metadata.Notes = ""
	s := newFakeSurface()
	r := newTestRun(doc, s)

	endY, err := r.drawTerms(500, 200)
	if err != nil {
		t.Fatalf("drawTerms: %v", err)
	}
	if endY != 500 {
		t.Fatalf("empty terms must not move the cursor, endY=%v", endY)
	}
	if len(s.texts) != 0 {
		t.Fatal("empty terms must draw nothing")
	}
}

func TestDrawTermsNoRoomAtAll(t *testing.T) {
	doc := invoiceDoc()
	doc.Metadata.Terms = "เงื่อนไข"
	s := newFakeSurface()
	r := newTestRun(doc, s)

	endY, err := r.drawTerms(500, 5)
	if err != nil {
		t.Fatalf("drawTerms: %v", err)
	}
	if endY != 500 {
		t.Fatal("cursor must stay put when nothing fits")
	}
	if !r.termsClipped {
		t.Fatal("clipped flag must be set when nothing fits")
	}
}

func TestTermsTextCombinesNotes(t *testing.T) {
	doc := invoiceDoc()
	doc.Metadata.Terms = "เงื่อนไข"
	doc.Metadata.Notes = "หมายเหตุเพิ่มเติม"
	r := newTestRun(doc, newFakeSurface())

	got := r.termsText()
	if got != "เงื่อนไข\nหมายเหตุเพิ่มเติม" {
		t.Fatalf("termsText = %q", got)
	}
}

func TestFitTextToHeight(t *testing.T) {
	r := newTestRun(invoiceDoc(), newFakeSurface())
	style := TextStyle{Size: 10}

	text := strings.Repeat("abcde ", 100)
	fitted, clipped := r.fitTextToHeight(text, style, 100, 1000)
	if clipped || fitted != text {
		t.Fatal("text that fits must pass through unchanged")
	}

	fitted, clipped = r.fitTextToHeight(text, style, 100, 25)
	if !clipped {
		t.Fatal("expected clipping")
	}
	if !strings.HasSuffix(fitted, "…") {
		t.Fatalf("fitted = %q, want ellipsis suffix", fitted)
	}
	if h := r.s.MeasureText(fitted, style, 100).H; h > 25 {
		t.Fatalf("fitted height %v exceeds budget", h)
	}

	if fitted, clipped = r.fitTextToHeight(text, style, 100, 0); fitted != "" || !clipped {
		t.Fatal("zero budget must drop everything")
	}
}
