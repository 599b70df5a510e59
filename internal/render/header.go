package render

import (
	"math"

	"go.uber.org/zap"
)

// drawHeader lays out the logo box, the issuer block and the right-aligned
// document-type badge. The badge never collapses below BadgeMinHeight, so
// the header keeps a usable size even without a logo.
func (r *run) drawHeader(startY float64) (float64, error) {
	l := r.cfg.Layout
	sz := r.cfg.Sizes
	pal := r.style.Palette
	m := r.s.Margins()
	bodyW := r.s.BodyWidth()

	var logoH float64
	if len(r.doc.Issuer.Logo) > 0 {
		size, err := r.s.DrawImage(r.doc.Issuer.Logo, m.Left, startY, ImageFit{FitWidth: l.LogoWidth})
		if err != nil {
			// Missing or broken logo must not change the header shape.
			r.log.Warn("logo draw failed, skipping", zap.Error(err))
		} else {
			logoH = size.H
		}
	}

	badgeH := math.Max(logoH, l.BadgeMinHeight)
	badgeX := m.Left + bodyW - l.BadgeWidth
	r.s.FillRect(badgeX, startY, l.BadgeWidth, badgeH, pal.Primary)

	const badgePad = 6
	innerW := l.BadgeWidth - 2*badgePad
	by := startY + badgePad
	by += r.s.DrawText(r.style.Title, badgeX+badgePad, by, TextOptions{
		Style: TextStyle{Bold: true, Size: sz.Heading3},
		Color: pal.OnPrimary,
		Width: innerW,
		Align: AlignCenter,
	})
	by += r.s.DrawText(r.style.TitleAlt, badgeX+badgePad, by, TextOptions{
		Style: TextStyle{Size: sz.Small},
		Color: pal.OnPrimary,
		Width: innerW,
		Align: AlignCenter,
	})
	r.s.DrawText(r.doc.Metadata.Number, badgeX+badgePad, by, TextOptions{
		Style: TextStyle{Bold: true, Size: sz.Body},
		Color: pal.OnPrimary,
		Width: innerW,
		Align: AlignCenter,
	})

	// Issuer block sits between the logo box and the badge. The logo width
	// is reserved even when no logo drew, keeping columns stable.
	issX := m.Left + l.LogoWidth + 15
	issW := bodyW - l.LogoWidth - 15 - l.BadgeWidth - 10
	iy := startY
	iy += r.s.DrawText(r.doc.Issuer.Name, issX, iy, TextOptions{
		Style: TextStyle{Bold: true, Size: sz.Heading2},
		Color: pal.Text,
		Width: issW,
	})
	iy += 3
	for _, line := range r.issuerLines() {
		h := r.s.DrawText(line, issX, iy, TextOptions{
			Style: TextStyle{Size: sz.Label},
			Color: pal.TextDark,
			Width: issW,
		})
		iy += h + 2
	}

	bottom := math.Max(startY+logoH, math.Max(iy, startY+badgeH)) + l.HeaderRuleGap
	r.s.StrokeLine(m.Left, bottom, m.Left+bodyW, bottom, pal.Accent, 2, nil)
	return bottom + l.HeaderRuleGap, nil
}

func (r *run) issuerLines() []string {
	iss := r.doc.Issuer
	lines := make([]string, 0, 3)
	if iss.Address != "" {
		lines = append(lines, iss.Address)
	}
	if iss.TaxID != "" {
		lines = append(lines, "เลขประจำตัวผู้เสียภาษีอากร "+iss.TaxID)
	}
	if iss.Phone != "" {
		lines = append(lines, "โทร: "+iss.Phone)
	}
	return lines
}
