package theme

// Nord palette, https://www.nordtheme.com/docs/colors-and-palettes
var Nord = Palette{
	PrimaryColor:   pair("#5e81ac", "#88c0d0"),
	SecondaryColor: pair("#81a1c1", "#81a1c1"),
	AccentColor:    pair("#d08770", "#ebcb8b"),
	ErrorColor:     pair("#bf616a", "#bf616a"),
	SuccessColor:   pair("#a3be8c", "#a3be8c"),
	InfoColor:      pair("#5e81ac", "#b48ead"),
	TextColor:      pair("#2e3440", "#eceff4"),
	MutedColor:     pair("#4c566a", "#7b88a1"),
	SelectedColor:  pair("#d8dee9", "#3b4252"),
	BorderColor:    pair("#d8dee9", "#4c566a"),
}

func init() {
	RegisterTheme("nord", Nord)
}
