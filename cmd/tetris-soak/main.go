package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/fatih/color"
	"github.com/plus3/tetris/game"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the soak should run for.")
	dt := flag.Float64("dt", 0.3, "Seconds passed to each frame.")
	seed := flag.Uint64("seed", 0, "Seed of the first session; later sessions add their index. Zero picks random seeds.")
	frameLimit := flag.Int("frame-limit", 100000, "Frames after which a session that has not ended is abandoned.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting tetris soak...")

	report := &Report{
		Duration:       *duration,
		DeltaTime:      *dt,
		FrameLimit:     *frameLimit,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	for i := uint64(0); ctx.Err() == nil; i++ {
		cfg := game.DefaultConfig()
		if *seed != 0 {
			cfg.Seed = *seed + i
		}
		runSession(ctx, cfg, report)
	}

	report.TotalTime = time.Since(startTime)
	report.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Soak finished.")

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	summary := color.New(color.FgGreen, color.Bold)
	if len(report.Sessions) == 0 || report.Lost() < len(report.Sessions) {
		summary = color.New(color.FgYellow, color.Bold)
	}
	summary.Printf("%d sessions, %d lost, %d pieces in %s\n",
		len(report.Sessions), report.Lost(), report.Pieces.Total, report.TotalTime.Round(time.Millisecond))
}

// runSession plays one headless session until it ends, the frame limit is
// hit or ctx is done, and appends the result to report.
func runSession(ctx context.Context, cfg game.Config, report *Report) {
	world := game.NewWorld(cfg)
	start := time.Now()

	for frame := 0; frame < report.FrameLimit && !world.Done(); frame++ {
		if ctx.Err() != nil {
			break
		}
		updateStart := time.Now()
		world.Step(report.DeltaTime)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		report.TotalFrames++
	}

	s := world.Session()
	report.Sessions = append(report.Sessions, SessionResult{
		Name:    s.Name,
		Seed:    s.Seed,
		Pieces:  s.Pieces,
		Ticks:   world.Gravity().Ticks,
		Frames:  s.Frames,
		Lost:    world.Over(),
		Elapsed: time.Since(start),
	})
	report.addSchedulerStats(world.Scheduler.Stats())
}
