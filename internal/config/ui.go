package config

// Theme names accepted by ui.theme.
const (
	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// UIConfig holds user interface configuration.
type UIConfig struct {
	// Theme selects the color scheme (auto follows the terminal background)
	Theme string `yaml:"theme"`

	// PaletteSeed makes the per-value colors reproducible (0 = random per run)
	PaletteSeed int64 `yaml:"palette_seed"`

	// ShowHelp shows the key help footer
	ShowHelp bool `yaml:"show_help"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Theme:       ThemeAuto,
		PaletteSeed: 0,
		ShowHelp:    true,
	}
}
