package colors

// Wave returns the Kanagawa Wave color scheme (dark theme with blue/purple accents)
func Wave() *ColorScheme {
	return &ColorScheme{
		Preset: "wave",

		// Primary accent color (oniViolet)
		Accent: "#957FB8",

		// Semantic colors
		Create: "#98BB6C", // springGreen
		Edit:   "#7E9CD8", // crystalBlue
		Delete: "#FF5D62", // peachRed

		// UI element colors
		ColumnBorder:   "#54546D",
		CardBorder:     "#363646",
		SelectedBorder: "#7AA89F", // waveAqua2
		DragBorder:     "#FF9E3B", // roninYellow
		DropTarget:     "#98BB6C",

		// Text colors
		Title:  "#7E9CD8",
		Subtle: "#727169", // fujiGray
		Normal: "#DCD7BA", // fujiWhite

		// Notification colors
		InfoFg:  "#658594",
		InfoBg:  "#252535",
		ErrorFg: "#E82424", // samuraiRed
		ErrorBg: "#43242B",
	}
}
