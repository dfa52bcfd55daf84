package model

import "sync"

// CellPool recycles next-generation buffers between ticks.
type CellPool struct {
	pool sync.Pool
}

func NewCellPool() *CellPool {
	return &CellPool{
		pool: sync.Pool{
			New: func() interface{} {
				return new([]Cell)
			},
		},
	}
}

// Get returns a buffer of exactly n cells. Contents are unspecified.
func (p *CellPool) Get(n int) []Cell {
	buf := p.pool.Get().(*[]Cell)
	if cap(*buf) < n {
		return make([]Cell, n)
	}
	return (*buf)[:n]
}

// Put returns a buffer to the pool, clearing it first
func (p *CellPool) Put(cells []Cell) {
	if cells == nil {
		return
	}
	clear(cells)
	p.pool.Put(&cells)
}
