package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/plus3/tetris/game"
	"github.com/plus3/tetris/gui"
	"github.com/plus3/tetris/term"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

// run plays one session. Errors are returned rather than fatal so deferred
// cleanup runs before the process exits.
func run(args []string) error {
	def := game.DefaultConfig()
	fs := flag.NewFlagSet("tetris", flag.ContinueOnError)

	frontend := fs.String("frontend", "window", "Frontend to play on: window or term.")
	seed := fs.Uint64("seed", 0, "Piece dealer seed. Zero picks a random seed.")
	step := fs.Duration("step", def.Step, "Time between gravity ticks.")
	controls := fs.Bool("controls", false, "Enable arrow key movement, rotation and soft drop.")
	hold := fs.Bool("hold", false, "Keep the window open with a GAME OVER banner after a loss.")
	tps := fs.Int("tps", 60, "Frames per second.")
	debug := fs.Bool("debug", false, "Show the Dear ImGui debug overlay (window frontend only).")
	verbose := fs.Bool("verbose", false, "Log session events to stderr, or to -log on the term frontend.")
	logPath := fs.String("log", "", "File for -verbose output on the term frontend. Empty discards it.")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if *frontend != "window" && *frontend != "term" {
		return fmt.Errorf("unknown frontend %q", *frontend)
	}

	logger, closeLog, err := sessionLogger(*verbose, *frontend, *logPath, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := def
	cfg.Seed = *seed
	cfg.Step = *step
	cfg.Controls = *controls
	cfg.ExitOnLoss = !*hold
	if logger != nil {
		cfg.Logger = logger
	}

	world := game.NewWorld(cfg)
	log.Printf("Starting session %s (seed %d) on the %s frontend", world.Session().Name, world.Session().Seed, *frontend)

	switch *frontend {
	case "window":
		err = gui.Run(world, gui.Options{TPS: *tps, Debug: *debug})
	case "term":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = term.Run(ctx, world, term.Options{Interval: tickInterval(*tps)})
	}
	if err != nil {
		return fmt.Errorf("frontend failed: %w", err)
	}

	s := world.Session()
	log.Printf("Session %s ended: %s after %d pieces", s.Name, s.Phase, s.Pieces)
	return nil
}
