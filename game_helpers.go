package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/flower-game/model"
	"github.com/sheikhrachel/flower-game/sim"
	"github.com/sheikhrachel/flower-game/utils"
)

// overrides holds command-line values that replace config file settings
// when the flag was given explicitly.
type overrides struct {
	fs          *flag.FlagSet
	width       int
	height      int
	generations int
	frameRate   time.Duration
	seed        string
	randomSeed  int64
	density     float64
	runs        int
	trace       bool
	patterns    []utils.PatternPlacement
}

func bindOverrides(fs *flag.FlagSet) *overrides {
	o := &overrides{fs: fs}
	fs.IntVar(&o.width, "width", 0, "grid width")
	fs.IntVar(&o.height, "height", 0, "grid height")
	fs.IntVar(&o.generations, "generations", 0, "stop after this many generations (0 = until stable)")
	fs.DurationVar(&o.frameRate, "frame", 0, "delay between generations")
	fs.StringVar(&o.seed, "seed", "", "initial pattern: default, empty or random")
	fs.Int64Var(&o.randomSeed, "random-seed", 0, "seed for the random initial pattern")
	fs.Float64Var(&o.density, "density", 0, "live cell density for the random initial pattern")
	fs.IntVar(&o.runs, "runs", 0, "number of independent simulations in headless mode")
	fs.BoolVar(&o.trace, "trace", false, "log every cell transition (headless and plain modes)")
	fs.Func("pattern", "place a pattern as name:row,column (repeatable; known: "+
		strings.Join(model.PatternNames(), ", ")+")", func(v string) error {
		p, err := parsePlacement(v)
		if err != nil {
			return err
		}
		o.patterns = append(o.patterns, p)
		return nil
	})
	return o
}

func (o *overrides) apply(config *utils.Config) error {
	o.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			config.Width = o.width
		case "height":
			config.Height = o.height
		case "generations":
			config.MaxGenerations = o.generations
		case "frame":
			config.FrameRate = o.frameRate
		case "seed":
			config.Seed = o.seed
		case "random-seed":
			config.RandomSeed = o.randomSeed
		case "density":
			config.RandomDensity = o.density
		case "runs":
			config.Runs = o.runs
		case "trace":
			config.Trace = o.trace
		}
	})
	config.Patterns = append(config.Patterns, o.patterns...)
	return config.Validate()
}

// parsePlacement parses "glider:3,4".
func parsePlacement(v string) (utils.PatternPlacement, error) {
	name, at, ok := strings.Cut(v, ":")
	if !ok {
		return utils.PatternPlacement{}, errors.Errorf("[parsePlacement] expected name:row,column, got %q", v)
	}
	rowStr, colStr, ok := strings.Cut(at, ",")
	if !ok {
		return utils.PatternPlacement{}, errors.Errorf("[parsePlacement] expected row,column, got %q", at)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowStr))
	if err != nil {
		return utils.PatternPlacement{}, errors.Wrapf(err, "[parsePlacement] bad row in %q", v)
	}
	column, err := strconv.Atoi(strings.TrimSpace(colStr))
	if err != nil {
		return utils.PatternPlacement{}, errors.Wrapf(err, "[parsePlacement] bad column in %q", v)
	}
	return utils.PatternPlacement{Name: strings.TrimSpace(name), Row: row, Column: column}, nil
}

// newSimulations creates config.Runs independent simulations.
func newSimulations(config utils.Config) ([]*sim.Simulation, error) {
	sims := make([]*sim.Simulation, 0, config.Runs)
	for run := range config.Runs {
		s, err := sim.FromConfig(config, run)
		if err != nil {
			return nil, err
		}
		if config.Trace {
			traceTransitions(s.Grid(), run)
		}
		sims = append(sims, s)
	}
	return sims, nil
}

func traceTransitions(grid *model.Grid, run int) {
	grid.SetObserver(func(tr model.Transition) {
		log.Printf("run %d: flower[%d, %d] is %v with %d live neighbors, becomes %v",
			run, tr.Row, tr.Column, tr.From, tr.Neighbors, tr.To)
	})
}

// runHeadless advances every run to completion and prints a summary.
func runHeadless(ctx context.Context, config utils.Config) error {
	sims, err := newSimulations(config)
	if err != nil {
		return err
	}

	fmt.Printf("Grid: %dx%d | Runs: %d | Seed: %s\n", config.Width, config.Height, config.Runs, config.Seed)
	runErr := sim.RunAll(ctx, sims, config.MaxGenerations)

	for run, s := range sims {
		displayGameStatus(os.Stdout, run, s)
	}
	if len(sims) == 1 {
		renderer := &model.TerminalRenderer{Out: os.Stdout}
		if err = renderer.Display(sims[0].Grid()); err != nil {
			return err
		}
	}
	return runErr
}

// runPlain animates a single run by redrawing the terminal every frame.
func runPlain(ctx context.Context, config utils.Config) error {
	config.Runs = 1
	sims, err := newSimulations(config)
	if err != nil {
		return err
	}

	var (
		s        = sims[0]
		renderer = &model.TerminalRenderer{Out: os.Stdout}
	)
	for {
		if !config.Trace {
			renderer.Clear()
		}
		displayGameStatus(os.Stdout, 0, s)
		if err = renderer.Display(s.Grid()); err != nil {
			return err
		}

		// Check for max generations limit
		if config.MaxGenerations > 0 && s.Generation() >= config.MaxGenerations {
			fmt.Printf("\n🏁 Reached maximum generations limit (%d)\n", config.MaxGenerations)
			return nil
		}
		if s.Done() {
			fmt.Printf("\n🛑 Stopped: %s\n", s.Status())
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(config.FrameRate):
		}
		s.Step()
	}
}

// displayGameStatus shows the current game status
func displayGameStatus(w io.Writer, run int, s *sim.Simulation) {
	var (
		grid        = s.Grid()
		livingCells = grid.CountLivingCells()
		density     = float64(livingCells) / float64(grid.GetWidth()*grid.GetHeight()) * 100
		stats       = s.Stats()
	)

	fmt.Fprintf(w, "Run: %d | Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		run, s.Generation(), livingCells, density, s.Status())
	fmt.Fprintf(w, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime().Seconds())
}
