package ui

import "strings"

// Theme is one look for the terminal output: palette, glyphs and frame.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending string

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
	BarFull, BarEmpty        string

	CornerTL, CornerTR, CornerBL, CornerBR string
	H, V                                   string

	// Confetti colors cycle across the celebration line.
	Confetti []string
}

var themes = []Theme{
	{
		Name:  "classic",
		Title: bold, Muted: fgGray, Accent: fgBlue,
		Success: fgGreen, Error: fgRed, Pending: fgYellow,
		BoxUnchecked: "☐", BoxChecked: "☑",
		SymDone: "✔", SymPending: "•",
		BarFull: "█", BarEmpty: "░",
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		// blue, violet, emerald
		Confetti: []string{"\033[38;5;69m", "\033[38;5;99m", "\033[38;5;42m"},
	},
	{
		Name:  "neon",
		Title: "\033[95m", Muted: fgGray, Accent: "\033[96m",
		Success: fgGreen, Error: fgRed, Pending: "\033[93m",
		BoxUnchecked: "◻", BoxChecked: "◼",
		SymDone: "✔", SymPending: "•",
		BarFull: "▰", BarEmpty: "▱",
		CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
		H: "─", V: "│",
		Confetti: []string{"\033[95m", "\033[96m", "\033[93m"},
	},
	{
		Name:         "mono",
		BoxUnchecked: "[ ]", BoxChecked: "[x]",
		SymDone: "x", SymPending: "-",
		BarFull: "#", BarEmpty: ".",
		CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
		H: "-", V: "|",
	},
}

var current = themes[0]

// Themes lists the names SetTheme understands.
func Themes() []string {
	out := make([]string, 0, len(themes))
	for _, t := range themes {
		out = append(out, t.Name)
	}
	return out
}

// SetTheme switches the look; unknown names fall back to classic.
func SetTheme(name string) {
	current = themes[0]
	for _, t := range themes {
		if strings.EqualFold(t.Name, name) {
			current = t
			return
		}
	}
}

func Current() Theme { return current }
