package render

import (
	"go.uber.org/fx"

	"github.com/smallbiznis/papermill/internal/config"
	"github.com/smallbiznis/papermill/internal/document"
)

// NewConfigFromApp derives the engine configuration from the service config:
// stock A4 geometry, the configured font pair, and any palette or footer
// overrides from the theme file.
func NewConfigFromApp(cfg config.Config) (RenderConfig, error) {
	rc := DefaultConfig()
	rc.Font = FontConfig{
		Dir:     cfg.Fonts.Dir,
		Family:  cfg.Fonts.Family,
		Regular: cfg.Fonts.Regular,
		Bold:    cfg.Fonts.Bold,
	}

	theme, err := config.LoadTheme(cfg.ThemePath)
	if err != nil {
		return RenderConfig{}, err
	}
	if theme.FooterText != "" {
		rc.FooterText = theme.FooterText
	}
	if len(theme.Kinds) > 0 {
		rc.Palettes = make(map[document.Kind]PaletteOverride, len(theme.Kinds))
		for kind, colors := range theme.Kinds {
			rc.Palettes[document.Kind(kind)] = PaletteOverride{
				PrimaryHex:   colors.Primary,
				AccentHex:    colors.Accent,
				HighlightHex: colors.Highlight,
			}
		}
	}
	return rc, nil
}

var Module = fx.Module("render",
	fx.Provide(NewConfigFromApp),
	fx.Provide(NewEngine),
)
