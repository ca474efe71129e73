package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Cards
	AddCard string `yaml:"add_card" koanf:"add_card"`

	// Columns
	AddColumn string `yaml:"add_column" koanf:"add_column"`

	// Either entity, depending on the selection
	Rename string `yaml:"rename" koanf:"rename"`
	Delete string `yaml:"delete" koanf:"delete"`

	// Keyboard drag
	Grab string `yaml:"grab" koanf:"grab"`
	Drop string `yaml:"drop" koanf:"drop"`

	// Navigation
	PrevColumn string `yaml:"prev_column" koanf:"prev_column"`
	NextColumn string `yaml:"next_column" koanf:"next_column"`
	PrevCard   string `yaml:"prev_card" koanf:"prev_card"`
	NextCard   string `yaml:"next_card" koanf:"next_card"`

	// Other
	Reload   string `yaml:"reload" koanf:"reload"`
	ShowHelp string `yaml:"show_help" koanf:"show_help"`
	Quit     string `yaml:"quit" koanf:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		AddCard:   "a",
		AddColumn: "A",

		Rename: "r",
		Delete: "d",

		Grab: "space",
		Drop: "enter",

		PrevColumn: "h",
		NextColumn: "l",
		PrevCard:   "k",
		NextCard:   "j",

		Reload:   "R",
		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	if k.AddCard == "" {
		k.AddCard = defaults.AddCard
	}
	if k.AddColumn == "" {
		k.AddColumn = defaults.AddColumn
	}
	if k.Rename == "" {
		k.Rename = defaults.Rename
	}
	if k.Delete == "" {
		k.Delete = defaults.Delete
	}
	if k.Grab == "" {
		k.Grab = defaults.Grab
	}
	if k.Drop == "" {
		k.Drop = defaults.Drop
	}
	if k.PrevColumn == "" {
		k.PrevColumn = defaults.PrevColumn
	}
	if k.NextColumn == "" {
		k.NextColumn = defaults.NextColumn
	}
	if k.PrevCard == "" {
		k.PrevCard = defaults.PrevCard
	}
	if k.NextCard == "" {
		k.NextCard = defaults.NextCard
	}
	if k.Reload == "" {
		k.Reload = defaults.Reload
	}
	if k.ShowHelp == "" {
		k.ShowHelp = defaults.ShowHelp
	}
	if k.Quit == "" {
		k.Quit = defaults.Quit
	}
}
