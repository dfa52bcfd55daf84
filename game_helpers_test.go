package main

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"

	"github.com/sheikhrachel/flower-game/sim"
	"github.com/sheikhrachel/flower-game/utils"
)

func TestParsePlacement(t *testing.T) {
	got, err := parsePlacement("glider: 3, 4")
	if err != nil {
		t.Fatal(err)
	}
	if want := (utils.PatternPlacement{Name: "glider", Row: 3, Column: 4}); got != want {
		t.Fatalf("parsePlacement = %+v, want %+v", got, want)
	}

	for _, bad := range []string{"glider", "glider:3", "glider:x,1", "glider:1,y"} {
		if _, err := parsePlacement(bad); err == nil {
			t.Errorf("parsePlacement(%q) accepted", bad)
		}
	}
}

func TestOverridesOnlyApplyExplicitFlags(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o := bindOverrides(fs)
	if err := fs.Parse([]string{"-width", "12", "-seed", "empty", "-pattern", "block:1,1"}); err != nil {
		t.Fatal(err)
	}

	config := utils.DefaultConfig()
	if err := o.apply(&config); err != nil {
		t.Fatal(err)
	}
	if config.Width != 12 || config.Height != 64 || config.Seed != utils.SeedEmpty {
		t.Fatalf("unexpected config: %+v", config)
	}
	if len(config.Patterns) != 1 || config.Patterns[0].Name != "block" {
		t.Fatalf("patterns = %+v", config.Patterns)
	}
}

func TestOverridesRejectInvalidConfig(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	o := bindOverrides(fs)
	if err := fs.Parse([]string{"-height", "0"}); err != nil {
		t.Fatal(err)
	}
	config := utils.DefaultConfig()
	if err := o.apply(&config); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestRunHeadlessStopsOnStillLife(t *testing.T) {
	config := utils.DefaultConfig()
	config.Width, config.Height = 6, 6
	config.Seed = utils.SeedEmpty
	config.Patterns = []utils.PatternPlacement{{Name: "block", Row: 2, Column: 2}}
	config.StagnationThreshold = 2

	if err := runHeadless(context.Background(), config); err != nil {
		t.Fatal(err)
	}
}

func TestDisplayGameStatus(t *testing.T) {
	config := utils.DefaultConfig()
	config.Width, config.Height = 4, 4
	config.Seed = utils.SeedEmpty

	s, err := sim.FromConfig(config, 0)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	displayGameStatus(&buf, 2, s)
	if !strings.Contains(buf.String(), "Run: 2 | Gen: 0 | Living: 0") {
		t.Fatalf("unexpected status: %q", buf.String())
	}
}
