package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/sheikhrachel/flower-game/sim"
	"github.com/sheikhrachel/flower-game/utils"
)

const defaultConfigFile = "config.json"

func main() {
	var (
		configFile = flag.String("config", "", "path to a JSON config file (default: config.json if present)")
		headless   = flag.Bool("headless", false, "run without animation and print a summary")
		plain      = flag.Bool("plain", false, "animate with plain terminal output instead of a full-screen UI")
		fromFlags  = bindOverrides(flag.CommandLine)
	)
	flag.Parse()

	config, err := loadConfig(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	if err = fromFlags.apply(&config); err != nil {
		log.Fatal(err)
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch {
	case *headless:
		err = runHeadless(ctx, config)
	case *plain:
		err = runPlain(ctx, config)
	default:
		err = runInteractive(ctx, config)
	}
	if err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
}

// loadConfig falls back to defaults when no file was named and config.json
// does not exist.
func loadConfig(filename string) (utils.Config, error) {
	if filename != "" {
		return utils.LoadConfig(filename)
	}
	if _, err := os.Stat(defaultConfigFile); err != nil {
		return utils.DefaultConfig(), nil
	}
	return utils.LoadConfig(defaultConfigFile)
}

func runInteractive(ctx context.Context, config utils.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err = screen.Init(); err != nil {
		return err
	}

	s, err := sim.FromConfig(config, 0)
	if err != nil {
		screen.Fini()
		return err
	}

	run := 0
	controller := sim.NewController(screen, s, config.FrameRate)
	controller.Reset = func() (*sim.Simulation, error) {
		run++
		return sim.FromConfig(config, run)
	}
	if err = controller.Run(ctx); err != nil {
		return err
	}

	final := controller.Simulation()
	fmt.Printf("Final stats: %d generations in %.1f seconds, %.1f avg population\n",
		final.Generation(), final.Stats().Runtime().Seconds(), final.Stats().AveragePopulation)
	return nil
}
