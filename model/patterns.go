package model

import (
	"sort"

	"github.com/pkg/errors"
)

// Pattern is a set of live cells relative to a top-left anchor.
type Pattern struct {
	Name  string
	Cells []Coordinate
}

var (
	Glider = Pattern{
		Name:  "glider",
		Cells: []Coordinate{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}},
	}
	Blinker = Pattern{
		Name:  "blinker",
		Cells: []Coordinate{{0, 0}, {0, 1}, {0, 2}},
	}
	Block = Pattern{
		Name:  "block",
		Cells: []Coordinate{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	}

	patterns = map[string]Pattern{
		Glider.Name:  Glider,
		Blinker.Name: Blinker,
		Block.Name:   Block,
	}
)

// PatternByName looks up one of the built-in patterns.
func PatternByName(name string) (Pattern, error) {
	p, ok := patterns[name]
	if !ok {
		return Pattern{}, errors.Errorf("[PatternByName] unknown pattern: %q (known: %v)", name, PatternNames())
	}
	return p, nil
}

// PatternNames lists the built-in patterns in sorted order.
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Place sets the pattern's cells Live with its anchor at (row, column).
// The anchor must be on the grid; the pattern body wraps around the edges.
func (g *Grid) Place(p Pattern, row, column int) error {
	if !g.contains(row, column) {
		return errors.Wrapf(ErrInvalidCoordinate, "[Place] %s anchor (%d, %d)", p.Name, row, column)
	}

	coords := make([]Coordinate, 0, len(p.Cells))
	for _, c := range p.Cells {
		r, col := g.wrap(row+c.Row, column+c.Column)
		coords = append(coords, Coordinate{Row: r, Column: col})
	}
	return g.SetLiveCells(coords)
}
