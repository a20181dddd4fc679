package ui

import (
	"fmt"
	"strings"
)

const confettiWidth = 36

// ConfettiGlyphs are the pieces every confetti line cycles through.
var ConfettiGlyphs = []string{"✦", "•", "✶", "▪", "✧", "◆"}

// Confetti prints a burst of colored glyphs and a banner.
type Confetti struct {
	Message string
}

func (c Confetti) Celebrate() {
	msg := c.Message
	if msg == "" {
		msg = "All questions completed!"
	}
	fmt.Fprintln(Out, ConfettiLine(confettiWidth))
	fmt.Fprintln(Out, C(Current().Title, "  🎉 "+msg))
	fmt.Fprintln(Out, ConfettiLine(confettiWidth))
}

// ConfettiLine returns one row of confetti, cycling glyphs and theme colors.
func ConfettiLine(width int) string {
	colors := Current().Confetti
	var b strings.Builder
	for i := 0; i < width; i++ {
		g := ConfettiGlyphs[(i*7)%len(ConfettiGlyphs)]
		if len(colors) > 0 {
			g = C(colors[i%len(colors)], g)
		}
		b.WriteString(g)
	}
	return b.String()
}
