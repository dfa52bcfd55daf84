package model

import (
	"crypto/md5"
	"fmt"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/flower-game/rules"
)

const (
	DefaultWidth  = 64
	DefaultHeight = 64
)

// Transition describes one cell's update during a tick.
type Transition struct {
	Row       int
	Column    int
	From      Cell
	Neighbors uint8
	To        Cell
}

// Grid is a toroidal board of flowers stored in row-major order.
// A Grid is not safe for concurrent use; run independent grids instead.
type Grid struct {
	width    int
	height   int
	cells    []Cell
	observer func(Transition)
}

// NewGrid creates a grid with the specified dimensions, seeding every cell
// with seed. A nil seed uses DefaultSeed.
func NewGrid(width, height int, seed SeedRule) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewGrid] %dx%d", width, height)
	}
	if seed == nil {
		seed = DefaultSeed
	}

	g := &Grid{width: width, height: height, cells: make([]Cell, width*height)}
	g.Reset(seed)
	return g, nil
}

// NewDefaultGrid creates the 64x64 grid with the default seed pattern.
func NewDefaultGrid() *Grid {
	g, _ := NewGrid(DefaultWidth, DefaultHeight, DefaultSeed)
	return g
}

// GetWidth returns the width of the grid
func (g *Grid) GetWidth() int {
	return g.width
}

// GetHeight returns the height of the grid
func (g *Grid) GetHeight() int {
	return g.height
}

// GetCells returns the current buffer. The slice is borrowed: callers must
// not modify it and must not keep it across a tick or resize.
func (g *Grid) GetCells() []Cell {
	return g.cells
}

// SetObserver registers fn to be called for every cell on each tick.
// A nil fn removes the observer.
func (g *Grid) SetObserver(fn func(Transition)) {
	g.observer = fn
}

// SetWidth replaces the buffer with width*height Dead cells.
func (g *Grid) SetWidth(width int) error {
	if width <= 0 {
		return errors.Wrapf(ErrInvalidDimensions, "[SetWidth] width: %d", width)
	}
	g.width = width
	g.cells = make([]Cell, g.width*g.height)
	return nil
}

// SetHeight replaces the buffer with width*height Dead cells.
func (g *Grid) SetHeight(height int) error {
	if height <= 0 {
		return errors.Wrapf(ErrInvalidDimensions, "[SetHeight] height: %d", height)
	}
	g.height = height
	g.cells = make([]Cell, g.width*g.height)
	return nil
}

// Reset refills every cell from seed without changing dimensions.
func (g *Grid) Reset(seed SeedRule) {
	for i := range g.cells {
		g.cells[i] = seed(i)
	}
}

// index assumes 0 <= row < height and 0 <= column < width.
func (g *Grid) index(row, column int) int {
	return row*g.width + column
}

// IndexOf returns the linear index of (row, column).
func (g *Grid) IndexOf(row, column int) (int, error) {
	if !g.contains(row, column) {
		return 0, errors.Wrapf(ErrInvalidCoordinate, "[IndexOf] (%d, %d) outside %dx%d",
			row, column, g.width, g.height)
	}
	return g.index(row, column), nil
}

func (g *Grid) contains(row, column int) bool {
	return row >= 0 && row < g.height && column >= 0 && column < g.width
}

// wrap reduces any coordinate onto the torus.
func (g *Grid) wrap(row, column int) (int, int) {
	return (row%g.height + g.height) % g.height, (column%g.width + g.width) % g.width
}

// Get returns the state of a cell
func (g *Grid) Get(row, column int) (Cell, error) {
	idx, err := g.IndexOf(row, column)
	if err != nil {
		return Dead, err
	}
	return g.cells[idx], nil
}

// CountLiveNeighbors counts the live cells among the 8 toroidal neighbors.
// Coordinates outside the grid are wrapped first.
func (g *Grid) CountLiveNeighbors(row, column int) uint8 {
	row, column = g.wrap(row, column)

	var count uint8
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nr, nc := g.wrap(row+dr, column+dc)
			count += g.cells[g.index(nr, nc)].Value()
		}
	}
	return count
}

// Tick advances the grid one generation.
func (g *Grid) Tick() {
	g.TickPooled(nil)
}

// TickPooled advances the grid one generation, taking the next buffer from
// pool and handing the retired one back. Every neighbor count is read from
// the current generation; the new buffer replaces it only once complete.
func (g *Grid) TickPooled(pool *CellPool) {
	var next []Cell
	if pool != nil {
		next = pool.Get(len(g.cells))
	} else {
		next = make([]Cell, len(g.cells))
	}

	for row := range g.height {
		for column := range g.width {
			var (
				idx       = g.index(row, column)
				cell      = g.cells[idx]
				neighbors = g.CountLiveNeighbors(row, column)
				nextCell  = CellFromBool(rules.ApplyConwayRules(neighbors, cell.Alive()))
			)
			next[idx] = nextCell

			if g.observer != nil {
				g.observer(Transition{
					Row:       row,
					Column:    column,
					From:      cell,
					Neighbors: neighbors,
					To:        nextCell,
				})
			}
		}
	}

	prev := g.cells
	g.cells = next
	if pool != nil {
		pool.Put(prev)
	}
}

// SetLiveCells sets every listed cell Live. All coordinates are checked
// before any cell changes.
func (g *Grid) SetLiveCells(coords []Coordinate) error {
	for _, c := range coords {
		if !g.contains(c.Row, c.Column) {
			return errors.Wrapf(ErrInvalidCoordinate, "[SetLiveCells] (%d, %d) outside %dx%d",
				c.Row, c.Column, g.width, g.height)
		}
	}
	for _, c := range coords {
		g.cells[g.index(c.Row, c.Column)] = Live
	}
	return nil
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for _, c := range g.cells {
		count += int(c.Value())
	}
	return
}

// Hash returns an MD5 digest of the dimensions and cell states.
func (g *Grid) Hash() string {
	h := md5.New()
	fmt.Fprintf(h, "%dx%d:", g.width, g.height)

	buf := make([]byte, len(g.cells))
	for i, c := range g.cells {
		buf[i] = c.Value()
	}
	h.Write(buf)
	return fmt.Sprintf("%x", h.Sum(nil))
}
