package theme

// Dracula palette, https://draculatheme.com/contribute
var Dracula = Palette{
	PrimaryColor:   pair("#7e57c2", "#bd93f9"),
	SecondaryColor: pair("#0097a7", "#8be9fd"),
	AccentColor:    pair("#f9a825", "#f1fa8c"),
	ErrorColor:     pair("#d32f2f", "#ff5555"),
	SuccessColor:   pair("#388e3c", "#50fa7b"),
	InfoColor:      pair("#c2185b", "#ff79c6"),
	TextColor:      pair("#282a36", "#f8f8f2"),
	MutedColor:     pair("#757575", "#6272a4"),
	SelectedColor:  pair("#e0e0e0", "#44475a"),
	BorderColor:    pair("#bdbdbd", "#6272a4"),
}

func init() {
	RegisterTheme("dracula", Dracula)
}
