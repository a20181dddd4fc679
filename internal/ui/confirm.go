package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompt asks yes/no questions on a line-oriented input.
type Prompt struct {
	In  io.Reader
	Out io.Writer
}

// Confirm blocks for an answer; only y or yes agrees.
func (p Prompt) Confirm(question string) bool {
	fmt.Fprintf(p.Out, "%s %s ", C(Current().Pending, question), Dim("[y/N]"))
	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.Out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
