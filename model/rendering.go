package model

import (
	"fmt"
	"io"
	"strings"
)

const (
	GlyphDead = '◻'
	GlyphLive = '◼'

	ansiClearScreen = "\033[H\033[2J"
)

// Glyph returns the character used to draw c.
func (c Cell) Glyph() rune {
	if c == Live {
		return GlyphLive
	}
	return GlyphDead
}

// Render draws the grid as text, one newline-terminated line per row.
func (g *Grid) Render() string {
	var sb strings.Builder
	sb.Grow(g.height * (g.width*len(string(GlyphDead)) + 1))

	for row := range g.height {
		for _, c := range g.cells[g.index(row, 0):g.index(row, 0)+g.width] {
			sb.WriteRune(c.Glyph())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (g *Grid) String() string { return g.Render() }

// TerminalRenderer writes frames to a plain terminal.
type TerminalRenderer struct {
	Out io.Writer
}

// Display renders the grid to the terminal
func (r *TerminalRenderer) Display(g *Grid) error {
	_, err := io.WriteString(r.Out, g.Render())
	return err
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	fmt.Fprint(r.Out, ansiClearScreen)
}
