package render

// drawPageFooter renders the fixed trailer at the very bottom of the page.
// It is unconditional and positioned from the page edge, never from the
// layout cursor, so it lands in the same place on every document.
func (r *run) drawPageFooter() {
	pal := r.style.Palette
	m := r.s.Margins()
	footerY := r.s.PageHeight() - m.Bottom + r.cfg.Layout.FooterOffset

	r.s.StrokeLine(m.Left, footerY-10, m.Left+r.s.BodyWidth(), footerY-10, pal.Accent, 1, nil)
	r.s.DrawText(r.cfg.FooterText, m.Left, footerY-5, TextOptions{
		Style: TextStyle{Size: r.cfg.Sizes.Small},
		Color: pal.TextMuted,
		Width: r.s.BodyWidth(),
		Align: AlignCenter,
	})
}
