package render

import (
	"strings"

	"go.uber.org/zap"
)

// termsText combines the terms and free-form notes into the single block the
// remarks section draws. Both the height estimator and the renderer go
// through here so the placement decision and the drawn content agree.
func (r *run) termsText() string {
	terms := strings.TrimSpace(r.doc.Metadata.Terms)
	notes := strings.TrimSpace(r.doc.Metadata.Notes)
	switch {
	case terms == "":
		return notes
	case notes == "":
		return terms
	}
	return terms + "\n" + notes
}

// drawTerms renders the remarks block between the totals and the signature
// zone. Unlike the items table, text here is hard-clipped: whatever does not
// fit above the signatures is cut at a wrap boundary and marked with an
// ellipsis, because remarks must never push into or overlap the reserved
// signature area.
func (r *run) drawTerms(startY, maxH float64) (float64, error) {
	text := r.termsText()
	if text == "" {
		return startY, nil
	}

	sz := r.cfg.Sizes
	pal := r.style.Palette
	m := r.s.Margins()
	bodyW := r.s.BodyWidth()

	labelStyle := TextStyle{Bold: true, Size: sz.Body}
	bodyStyle := TextStyle{Size: sz.Small}
	labelH := r.s.MeasureText("หมายเหตุ", labelStyle, 0).H

	headH := labelH + r.cfg.Layout.TermsGap
	if maxH < headH {
		r.termsClipped = true
		r.log.Warn("remarks block clipped entirely, no room above signatures",
			zap.Float64("available", maxH))
		return startY, nil
	}

	fitted, clipped := r.fitTextToHeight(text, bodyStyle, bodyW, maxH-headH)
	if clipped {
		r.termsClipped = true
		r.log.Warn("remarks text clipped to fit above signatures",
			zap.Int("original_len", len(text)),
			zap.Int("drawn_len", len(fitted)))
	}

	r.s.DrawText("หมายเหตุ", m.Left, startY, TextOptions{
		Style: labelStyle, Color: pal.Primary,
	})
	y := startY + headH
	if fitted != "" {
		h := r.s.DrawText(fitted, m.Left, y, TextOptions{
			Style: bodyStyle, Color: pal.TextMuted, Width: bodyW, Align: AlignLeft,
		})
		y += h
	}
	return y, nil
}

// fitTextToHeight returns the longest prefix of text whose wrapped height at
// the given width stays within maxH, appending an ellipsis when anything was
// dropped. Binary search over the rune count keeps this cheap even for long
// remarks.
func (r *run) fitTextToHeight(text string, style TextStyle, width, maxH float64) (string, bool) {
	if maxH <= 0 {
		return "", true
	}
	if r.s.MeasureText(text, style, width).H <= maxH {
		return text, false
	}

	runes := []rune(text)
	lo, hi := 0, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		candidate := strings.TrimSpace(string(runes[:mid])) + "…"
		if r.s.MeasureText(candidate, style, width).H <= maxH {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	if lo == 0 {
		return "", true
	}
	return strings.TrimSpace(string(runes[:lo])) + "…", true
}
