package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome", "wave")
	Preset string `yaml:"preset" koanf:"preset"`

	// Primary accent color (used for selections, titles, highlights)
	Accent string `yaml:"accent" koanf:"accent"`

	// Semantic colors
	Create string `yaml:"create" koanf:"create"` // add prompts
	Edit   string `yaml:"edit" koanf:"edit"`     // rename prompts
	Delete string `yaml:"delete" koanf:"delete"` // delete confirmations

	// UI element colors
	ColumnBorder   string `yaml:"column_border" koanf:"column_border"`
	CardBorder     string `yaml:"card_border" koanf:"card_border"`
	SelectedBorder string `yaml:"selected_border" koanf:"selected_border"`
	DragBorder     string `yaml:"drag_border" koanf:"drag_border"`
	DropTarget     string `yaml:"drop_target" koanf:"drop_target"`

	// Text colors
	Title  string `yaml:"title" koanf:"title"`
	Subtle string `yaml:"subtle" koanf:"subtle"` // Muted/placeholder text
	Normal string `yaml:"normal" koanf:"normal"`

	// Notification colors (foreground/background pairs)
	InfoFg  string `yaml:"info_fg" koanf:"info_fg"`
	InfoBg  string `yaml:"info_bg" koanf:"info_bg"`
	ErrorFg string `yaml:"error_fg" koanf:"error_fg"`
	ErrorBg string `yaml:"error_bg" koanf:"error_bg"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	case "wave":
		return Wave()
	default:
		return Default()
	}
}

// ApplyDefaults fills in missing color values using the preset as base
// If preset is specified, loads that preset first, then overrides with custom values
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)
	if c.Preset == "" {
		c.Preset = preset.Preset
	}

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&c.Accent, preset.Accent)
	fill(&c.Create, preset.Create)
	fill(&c.Edit, preset.Edit)
	fill(&c.Delete, preset.Delete)
	fill(&c.ColumnBorder, preset.ColumnBorder)
	fill(&c.CardBorder, preset.CardBorder)
	fill(&c.SelectedBorder, preset.SelectedBorder)
	fill(&c.DragBorder, preset.DragBorder)
	fill(&c.DropTarget, preset.DropTarget)
	fill(&c.Title, preset.Title)
	fill(&c.Subtle, preset.Subtle)
	fill(&c.Normal, preset.Normal)
	fill(&c.InfoFg, preset.InfoFg)
	fill(&c.InfoBg, preset.InfoBg)
	fill(&c.ErrorFg, preset.ErrorFg)
	fill(&c.ErrorBg, preset.ErrorBg)
}
