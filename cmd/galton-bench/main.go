// Command galton-bench drops particles through a board without a window
// and prints the resulting distribution and timings.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/galton/galton"
)

type options struct {
	particles  int
	frames     int
	spawnEvery int
	jitter     int
}

// run drops opts.particles particles near the top centre, one every
// spawnEvery frames. It stops once every particle has settled or after
// opts.frames frames.
func run(board *galton.Board, opts options) *Report {
	cfg := board.Config()
	report := &Report{
		Config:    cfg,
		Requested: opts.particles,
		Frames:    opts.frames,
		SpawnX:    cfg.Width / 2,
		Expected:  galton.ExpectedPercent(cfg.Rows),
		FrameTime: Stats{Samples: make([]time.Duration, 0, opts.frames)},
	}
	physics := cfg.Physics

	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()

	spawned := 0
	pouring := opts.particles > 0
	for frame := 0; frame < opts.frames; frame++ {
		if pouring && frame%opts.spawnEvery == 0 {
			offset := 0
			if opts.jitter > 0 {
				offset = spawned%(2*opts.jitter+1) - opts.jitter
			}
			pos := galton.Vec2{X: report.SpawnX + float64(offset), Y: cfg.Height * 0.02}
			if _, err := board.Spawn(pos); err != nil {
				if !errors.Is(err, galton.ErrCapacityExceeded) {
					log.Printf("spawn: %v", err)
				}
				pouring = false
			} else {
				spawned++
				pouring = spawned < opts.particles
			}
		}

		frameStart := time.Now()
		board.AdvanceFrame(physics)
		report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))

		if tally := board.Tally(); !pouring && tally.Settled == tally.Spawned {
			report.Frames = frame + 1
			break
		}
	}

	report.TotalTime = time.Since(start)
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Histogram = board.Histogram()
	report.Particles = spawned
	report.Systems = board.Stats().Systems
	return report
}

func main() {
	configPath := flag.String("config", "", "YAML config file; GALTON_* variables override it.")
	particles := flag.Int("particles", 1000, "Number of particles to drop.")
	frames := flag.Int("frames", 20000, "Number of frames to simulate.")
	spawnEvery := flag.Int("spawn-every", 4, "Frames between drops.")
	jitter := flag.Int("jitter", 3, "Spread drops over +/- this many pixels around the centre.")
	collisions := flag.Bool("collisions", false, "Enable particle-particle collisions.")
	flag.Parse()

	cfg, err := galton.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *collisions {
		cfg.Physics.PairCollisions = true
	}
	if *particles > cfg.MaxParticles {
		cfg.MaxParticles = *particles
	}
	if *spawnEvery < 1 {
		log.Fatalf("spawn-every must be at least 1, got %d", *spawnEvery)
	}

	board, err := galton.NewBoard(cfg)
	if err != nil {
		log.Fatalf("create board: %v", err)
	}

	log.Printf("Dropping %d particles over %d frames...", *particles, *frames)
	report := run(board, options{
		particles:  *particles,
		frames:     *frames,
		spawnEvery: *spawnEvery,
		jitter:     *jitter,
	})
	log.Println("Simulation finished.")

	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println()
}
