package sim

import (
	"context"
	"slices"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/flower-game/model"
	"github.com/sheikhrachel/flower-game/utils"
)

const (
	historySize = 5
	// a repeat within this many generations counts as stagnation
	cycleWindow = 3
)

// Status summarizes whether a simulation is still evolving.
type Status int

const (
	StatusActive Status = iota
	StatusStagnant
	StatusExtinct
)

func (s Status) String() string {
	switch s {
	case StatusStagnant:
		return "Stagnant"
	case StatusExtinct:
		return "Extinct"
	default:
		return "Active"
	}
}

// Simulation drives one grid and tracks its progress. Like the grid it owns,
// a Simulation is used from one goroutine at a time.
type Simulation struct {
	grid  *model.Grid
	pool  *model.CellPool
	stats *utils.Stats

	generation    int
	history       []string
	status        Status
	stagnantCount int

	// StagnationThreshold ends Run after this many consecutive stagnant
	// generations. Zero disables the check.
	StagnationThreshold int
}

// New wraps grid. pool may be nil.
func New(grid *model.Grid, pool *model.CellPool) *Simulation {
	s := &Simulation{
		grid:  grid,
		pool:  pool,
		stats: utils.NewStats(),
	}
	s.status = s.evaluate()
	return s
}

// NewGridFromConfig builds and seeds a grid. run offsets the random seed so
// independent runs differ.
func NewGridFromConfig(config utils.Config, run int) (*model.Grid, error) {
	var seed model.SeedRule
	switch config.Seed {
	case utils.SeedEmpty:
		seed = model.EmptySeed
	case utils.SeedRandom:
		seed = model.RandomSeed(model.NewRNG(config.RandomSeed+int64(run)), config.RandomDensity)
	default:
		seed = model.DefaultSeed
	}

	grid, err := model.NewGrid(config.Width, config.Height, seed)
	if err != nil {
		return nil, errors.Wrap(err, "[NewGridFromConfig] failed to create grid")
	}

	for _, placement := range config.Patterns {
		pattern, err := model.PatternByName(placement.Name)
		if err != nil {
			return nil, err
		}
		if err = grid.Place(pattern, placement.Row, placement.Column); err != nil {
			return nil, errors.Wrapf(err, "[NewGridFromConfig] failed to place pattern: %+v", placement)
		}
	}
	return grid, nil
}

// FromConfig creates the simulation for one run of config.
func FromConfig(config utils.Config, run int) (*Simulation, error) {
	grid, err := NewGridFromConfig(config, run)
	if err != nil {
		return nil, err
	}

	var pool *model.CellPool
	if config.UseMemoryPool {
		pool = model.NewCellPool()
	}

	s := New(grid, pool)
	s.StagnationThreshold = config.StagnationThreshold
	return s, nil
}

func (s *Simulation) Grid() *model.Grid  { return s.grid }
func (s *Simulation) Stats() *utils.Stats { return s.stats }
func (s *Simulation) Generation() int     { return s.generation }
func (s *Simulation) Status() Status      { return s.status }

// Step advances one generation and returns the resulting status.
func (s *Simulation) Step() Status {
	start := time.Now()
	s.grid.TickPooled(s.pool)
	s.generation++

	s.status = s.evaluate()
	if s.status == StatusStagnant {
		s.stagnantCount++
	} else {
		s.stagnantCount = 0
	}

	s.stats.Update(s.generation, s.grid.CountLivingCells(), time.Since(start))
	return s.status
}

// evaluate classifies the current grid and records it in the history.
func (s *Simulation) evaluate() Status {
	if s.grid.CountLivingCells() == 0 {
		s.record(s.grid.Hash())
		return StatusExtinct
	}

	hash := s.grid.Hash()
	recent := s.history[max(0, len(s.history)-cycleWindow):]
	stagnant := slices.Contains(recent, hash)
	s.record(hash)

	if stagnant {
		return StatusStagnant
	}
	return StatusActive
}

func (s *Simulation) record(hash string) {
	s.history = append(s.history, hash)
	// Keep only the last few states to detect cycles
	if len(s.history) > historySize {
		s.history = s.history[1:]
	}
}

// Done reports whether the simulation has stopped evolving.
func (s *Simulation) Done() bool {
	if s.status == StatusExtinct {
		return true
	}
	return s.StagnationThreshold > 0 && s.stagnantCount >= s.StagnationThreshold
}

// Run steps until generations have elapsed, the simulation is Done, or ctx
// is cancelled. generations <= 0 runs until Done or cancellation.
func (s *Simulation) Run(ctx context.Context, generations int) error {
	for i := 0; generations <= 0 || i < generations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.Done() {
			return nil
		}
		s.Step()
	}
	return nil
}

// RunAll runs independent simulations concurrently, one goroutine each.
// Simulations must not share a grid.
func RunAll(ctx context.Context, sims []*Simulation, generations int) error {
	eg, ctx := errgroup.WithContext(ctx)
	for i, s := range sims {
		eg.Go(func() error {
			if err := s.Run(ctx, generations); err != nil {
				return errors.Wrapf(err, "[RunAll] run %d stopped at generation %d", i, s.Generation())
			}
			return nil
		})
	}
	return eg.Wait()
}
