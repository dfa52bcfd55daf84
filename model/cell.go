package model

// Cell is the state of a single flower on the grid.
type Cell uint8

const (
	Dead Cell = 0
	Live Cell = 1
)

// Value converts the cell to 0 or 1 for neighbor summation.
func (c Cell) Value() uint8 {
	if c == Live {
		return 1
	}
	return 0
}

// Alive reports whether the cell is Live.
func (c Cell) Alive() bool { return c == Live }

// CellFromBool maps true to Live and false to Dead.
func CellFromBool(alive bool) Cell {
	if alive {
		return Live
	}
	return Dead
}

func (c Cell) String() string {
	if c == Live {
		return "Live"
	}
	return "Dead"
}

// Coordinate addresses a cell by row and column.
type Coordinate struct {
	Row    int
	Column int
}
