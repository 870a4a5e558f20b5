package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/pthm-cable/polyp/config"
	"github.com/pthm-cable/polyp/engine"
	"github.com/pthm-cable/polyp/sim"
	"github.com/pthm-cable/polyp/telemetry"
	"github.com/pthm-cable/polyp/vec"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = use config)")
	organisms := flag.Int("organisms", 4, "Number of demo organisms to assemble")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	// Build the simulation
	state := sim.New(sim.ParamsFromConfig(cfg), cfg.Arena.InitialCapacity)
	if cfg.Arena.MaxSlots > 0 {
		state.SetMaxCells(cfg.Arena.MaxSlots)
	}
	if err := seedOrganisms(state, rng, *organisms); err != nil {
		slog.Error("failed to assemble organisms", "error", err)
		os.Exit(1)
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	eng := engine.New(state, cfg.Physics.DT, perf)

	// Structured output (disabled when no directory is given)
	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	slog.Info("starting run",
		"seed", rngSeed,
		"cells", state.CellCount(),
		"connections", len(state.Connections()),
		"dt", cfg.Physics.DT,
	)

	limit := cfg.Run.MaxTicks
	if *maxTicks > 0 {
		limit = *maxTicks
	}

	if err := run(eng, output, *logStats, limit, cfg.Derived.LogIntervalTicks); err != nil {
		slog.Error("run aborted", "error", err, "tick", eng.Tick())
		os.Exit(1)
	}

	final := eng.Snapshot()
	slog.Info("run complete", "tick", final.Tick, "stats", final.WindowStats())
}

// run drives the fixed-timestep loop, emitting stats every logInterval
// ticks. limit = 0 runs forever.
func run(eng *engine.Engine, output *telemetry.OutputManager, logStats bool, limit, logInterval int) error {
	for tick := 0; limit == 0 || tick < limit; tick++ {
		if err := eng.Step(); err != nil {
			return err
		}

		if (tick+1)%logInterval != 0 {
			continue
		}

		snap := eng.Snapshot()
		stats := snap.WindowStats()
		if logStats {
			slog.Info("stats", "window", stats)
		}
		if err := output.WriteStats(stats); err != nil {
			return err
		}
		if err := output.WritePerf(eng.Perf(), snap.Tick); err != nil {
			return err
		}
	}
	return nil
}

// seedOrganisms scatters n radial organisms over the plane, each a hub cell
// with a ring of four limbs.
func seedOrganisms(state *sim.State, rng *rand.Rand, n int) error {
	limbs := []sim.CellType{sim.Spore, sim.Intestinal, sim.Muscle, sim.Kidney}
	for i := 0; i < n; i++ {
		center := vec.New(rng.Float64()*40-20, rng.Float64()*40-20)
		if _, err := sim.AssembleRadial(state, center, 4, sim.Neural, limbs); err != nil {
			return err
		}
	}
	return nil
}
