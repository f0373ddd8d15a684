package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mossgrove/terrasim/internal/config"
	"github.com/mossgrove/terrasim/internal/logger"
	"github.com/mossgrove/terrasim/internal/runlog"
	"github.com/mossgrove/terrasim/internal/sim"
	"github.com/mossgrove/terrasim/internal/tiles"
)

func main() {
	configFile := flag.String("config", "data/terrasim.yaml", "Path to config YAML file")
	width := flag.Int("width", 0, "Grid width (overrides config)")
	height := flag.Int("height", 0, "Grid height (overrides config)")
	steps := flag.Int("steps", -1, "Evolution steps (overrides config)")
	seed := flag.Int64("seed", 0, "Simulation seed (0 = random based on current time)")
	tileSet := flag.String("tiles", "", "Path to extra tile set YAML file (overrides config)")
	outputFile := flag.String("output", "", "Output file (empty for stdout)")
	allFrames := flag.Bool("frames", false, "Render every step instead of just the final grid")
	showLegend := flag.Bool("legend", true, "Show legend")
	history := flag.Int("history", 0, "Print the last N ledger entries and exit")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logCfg := cfg.Logging
	logCfg.ApplyEnvOverrides()
	logger.Initialize(logCfg)

	if *history > 0 {
		printRecentRuns(cfg.Ledger.Path, *history)
		return
	}

	// Flag overrides on top of the config file
	if *width > 0 {
		cfg.Simulation.Width = *width
	}
	if *height > 0 {
		cfg.Simulation.Height = *height
	}
	if *steps >= 0 {
		cfg.Simulation.Steps = *steps
	}
	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}
	if *tileSet != "" {
		cfg.TileSet = *tileSet
	}

	registry := tiles.NewRegistry()
	if cfg.TileSet != "" {
		if err := registry.LoadTileSet(cfg.TileSet); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading tile set: %v\n", err)
			os.Exit(1)
		}
	}

	adjacency, err := cfg.BuildAdjacency(registry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in adjacency config: %v\n", err)
		os.Exit(1)
	}

	thresholds := cfg.Evolution
	result, err := sim.Run(sim.Options{
		Width:      cfg.Simulation.Width,
		Height:     cfg.Simulation.Height,
		Steps:      cfg.Simulation.Steps,
		Seed:       cfg.Simulation.Seed,
		Universe:   registry.Kinds(),
		Adjacency:  adjacency,
		Thresholds: &thresholds,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Simulation failed: %v\n", err)
		os.Exit(1)
	}

	var output strings.Builder
	output.WriteString(fmt.Sprintf("Terrain Simulation (Seed: %d, Steps: %d)\n",
		result.Seed, cfg.Simulation.Steps))
	output.WriteString(strings.Repeat("=", 60) + "\n\n")

	if *allFrames {
		for i, g := range result.History {
			output.WriteString(fmt.Sprintf("Step %d\n", i))
			renderGrid(&output, g, registry)
			output.WriteString("\n")
		}
	} else {
		renderGrid(&output, result.History[len(result.History)-1], registry)
		output.WriteString("\n")
	}

	if *showLegend {
		output.WriteString(getLegend(registry))
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output.String()), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Map written to %s\n", *outputFile)
	} else {
		fmt.Print(output.String())
	}

	if cfg.Ledger.Enabled {
		recordRun(cfg.Ledger.Path, cfg, result)
	}
}

// recordRun appends the finished run to the ledger. Failures are logged
// rather than fatal; the run itself already succeeded.
func recordRun(path string, cfg *config.Config, result *sim.Result) {
	store, err := runlog.Open(path)
	if err != nil {
		logger.Error("failed to open run ledger", "path", path, "error", err)
		return
	}
	defer store.Close()

	id, err := store.Insert(runlog.Record{
		Seed:     result.Seed,
		Width:    cfg.Simulation.Width,
		Height:   cfg.Simulation.Height,
		Steps:    cfg.Simulation.Steps,
		Repairs:  result.Repairs,
		Duration: result.Duration,
	})
	if err != nil {
		logger.Error("failed to record run", "error", err)
		return
	}
	logger.Info("run recorded", "id", id, "seed", result.Seed)
}

func printRecentRuns(path string, limit int) {
	store, err := runlog.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run ledger: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.Recent(limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading run ledger: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return
	}

	fmt.Printf("%-6s %-20s %-10s %-6s %-8s %-12s %s\n",
		"ID", "SEED", "SIZE", "STEPS", "REPAIRS", "DURATION", "CREATED")
	for _, r := range runs {
		fmt.Printf("%-6d %-20d %-10s %-6d %-8d %-12s %s\n",
			r.ID, r.Seed, fmt.Sprintf("%dx%d", r.Width, r.Height),
			r.Steps, r.Repairs, r.Duration, r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}
