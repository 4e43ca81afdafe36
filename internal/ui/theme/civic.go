package theme

// Civic is the default palette, built around the app's indigo brand color.
var Civic = Palette{
	PrimaryColor:   pair("#4f46e5", "#6366f1"),
	SecondaryColor: pair("#0e7490", "#22d3ee"),
	AccentColor:    pair("#b45309", "#fbbf24"),
	ErrorColor:     pair("#dc2626", "#ef4444"),
	SuccessColor:   pair("#059669", "#10b981"),
	InfoColor:      pair("#2563eb", "#60a5fa"),
	TextColor:      pair("#111827", "#f9fafb"),
	MutedColor:     pair("#6b7280", "#9ca3af"),
	SelectedColor:  pair("#e0e7ff", "#312e81"),
	BorderColor:    pair("#d1d5db", "#4b5563"),
}

func init() {
	RegisterTheme(DefaultName, Civic)
}
