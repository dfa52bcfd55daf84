package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/flower-game/model"
)

const (
	screenLive = '█'
	screenDead = ' '

	minFrameRate = time.Millisecond
)

// ScreenRenderer draws a simulation onto a tcell screen, two columns per
// cell so the board keeps a square aspect.
type ScreenRenderer struct {
	screen tcell.Screen
	style  tcell.Style
	status tcell.Style
}

func NewScreenRenderer(screen tcell.Screen) *ScreenRenderer {
	return &ScreenRenderer{
		screen: screen,
		style:  tcell.StyleDefault.Foreground(tcell.ColorGreen),
		status: tcell.StyleDefault.Reverse(true),
	}
}

// Draw renders the grid clipped to the screen, followed by a status line.
func (r *ScreenRenderer) Draw(s *Simulation, paused bool) {
	r.screen.Clear()

	var (
		grid          = s.Grid()
		cells         = grid.GetCells()
		width, height = r.screen.Size()
		rows          = min(grid.GetHeight(), height-1)
		columns       = min(grid.GetWidth(), width/2)
	)

	for row := range rows {
		for column := range columns {
			glyph := screenDead
			if cells[row*grid.GetWidth()+column] == model.Live {
				glyph = screenLive
			}
			r.screen.SetContent(column*2, row, glyph, nil, r.style)
			r.screen.SetContent(column*2+1, row, glyph, nil, r.style)
		}
	}

	state := s.Status().String()
	if paused {
		state += " (paused)"
	}
	line := fmt.Sprintf("Gen: %d | Living: %d | Status: %s | space pause, n step, r reset, q quit",
		s.Generation(), grid.CountLivingCells(), state)
	r.putString(0, max(0, rows), line)

	r.screen.Show()
}

func (r *ScreenRenderer) putString(x, y int, s string) {
	width, _ := r.screen.Size()
	for _, c := range s {
		if x >= width {
			return
		}
		r.screen.SetContent(x, y, c, nil, r.status)
		x++
	}
}

// Controller runs an interactive simulation on a terminal screen.
type Controller struct {
	screen    tcell.Screen
	renderer  *ScreenRenderer
	sim       *Simulation
	frameRate time.Duration
	paused    bool

	// Reset, when set, replaces the simulation on the 'r' key.
	Reset func() (*Simulation, error)
}

// NewController takes ownership of an initialised screen; Run finalises it.
func NewController(screen tcell.Screen, s *Simulation, frameRate time.Duration) *Controller {
	return &Controller{
		screen:    screen,
		renderer:  NewScreenRenderer(screen),
		sim:       s,
		frameRate: max(frameRate, minFrameRate),
	}
}

// Paused starts the controller without advancing generations.
func (c *Controller) Paused(paused bool) *Controller {
	c.paused = paused
	return c
}

// Simulation returns the simulation currently on screen.
func (c *Controller) Simulation() *Simulation { return c.sim }

// Run polls input and advances the simulation until the user quits or ctx
// is cancelled. The screen is finalised on return.
func (c *Controller) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	events := make(chan tcell.Event)
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		for {
			ev := c.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})

	eg.Go(func() error {
		defer cancel()
		defer c.screen.Fini()

		ticker := time.NewTicker(c.frameRate)
		defer ticker.Stop()

		c.renderer.Draw(c.sim, c.paused)
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev := <-events:
				quit, err := c.handle(ev)
				if err != nil || quit {
					return err
				}
			case <-ticker.C:
				if !c.paused && !c.sim.Done() {
					c.sim.Step()
				}
			}
			c.renderer.Draw(c.sim, c.paused)
		}
	})

	return eg.Wait()
}

func (c *Controller) handle(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		c.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true, nil
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true, nil
			case ' ':
				c.paused = !c.paused
			case 'n':
				c.sim.Step()
			case 'r':
				if c.Reset == nil {
					return false, nil
				}
				s, err := c.Reset()
				if err != nil {
					return false, err
				}
				c.sim = s
			}
		}
	}
	return false, nil
}
