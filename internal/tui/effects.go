package tui

import (
	"strings"
	"sync"

	"github.com/idilsaglam/sheettracker/internal/ui"
)

// Celebration records the store's all-complete signal until the view
// picks it up.
type Celebration struct {
	mu      sync.Mutex
	pending bool
}

func (c *Celebration) Celebrate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = true
}

// Take reports and resets the pending signal.
func (c *Celebration) Take() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.pending
	c.pending = false
	return p
}

// Confirmation answers the store's clear prompt with the y/n the user gave
// in the TUI. Arm it right before ClearAll; the answer is used once.
type Confirmation struct {
	mu    sync.Mutex
	armed bool
	asked string
}

func (c *Confirmation) Arm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.armed = true
}

func (c *Confirmation) Confirm(prompt string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.asked = prompt
	ok := c.armed
	c.armed = false
	return ok
}

func confetti(width int) string {
	var b strings.Builder
	for i := 0; i < width; i++ {
		g := ui.ConfettiGlyphs[(i*7)%len(ui.ConfettiGlyphs)]
		b.WriteString(confettiStyles[i%len(confettiStyles)].Render(g))
	}
	return b.String()
}
