package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// KindTheme overrides the palette of one document kind. Colors are
// "#RRGGBB"; empty fields keep the built-in color.
type KindTheme struct {
	Primary   string `toml:"primary"`
	Accent    string `toml:"accent"`
	Highlight string `toml:"highlight"`
}

// Theme is the optional per-deployment theming file. Kinds are keyed by the
// document kind string ("invoice", "credit_note", ...).
type Theme struct {
	FooterText string               `toml:"footer_text"`
	Kinds      map[string]KindTheme `toml:"kinds"`
}

// LoadTheme parses the TOML theme file at path. A missing file is not an
// error so deployments without theming need no empty placeholder.
func LoadTheme(path string) (Theme, error) {
	var theme Theme
	if path == "" {
		return theme, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return theme, nil
	}
	if _, err := toml.DecodeFile(path, &theme); err != nil {
		return Theme{}, fmt.Errorf("config: theme %s: %w", path, err)
	}
	return theme, nil
}
