package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/polyp/config"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 36000, "Relaxation tick cap per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}

	// Create output directory
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Load base config
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	// Create parameter vector and evaluator
	params := NewParamVector()
	evaluator := NewFitnessEvaluator(params, *maxTicks, cfg.Physics.DT)

	// Open eval log
	logPath := filepath.Join(*outputDir, "relax_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	// Write header
	header := []string{"eval", "fitness"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	logWriter.Write(header)

	evalCount := 0
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(raw)

			evalCount++
			record := []string{
				strconv.Itoa(evalCount),
				strconv.FormatFloat(fitness, 'g', 6, 64),
			}
			for _, v := range raw {
				record = append(record, strconv.FormatFloat(v, 'g', 6, 64))
			}
			logWriter.Write(record)
			logWriter.Flush()

			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
	}

	initX := params.Normalize(params.DefaultVector())
	result, err := optimize.Minimize(problem, initX, settings, &optimize.NelderMead{})
	if err != nil {
		log.Printf("optimization stopped: %v", err)
	}
	if result == nil {
		log.Fatal("no optimization result")
	}

	best := params.Clamp(params.Denormalize(result.X))
	fmt.Printf("best fitness: %.3f after %d evaluations\n", result.F, evalCount)
	for i, spec := range params.Specs {
		fmt.Printf("  %-12s %.4f\n", spec.Name, best[i])
	}

	// Persist the tuned parameters as a ready-to-use config.
	cfg.Physics.Viscosity = best[0]
	cfg.Physics.SpringK = best[1]
	tunedPath := filepath.Join(*outputDir, "tuned.yaml")
	if err := cfg.WriteYAML(tunedPath); err != nil {
		log.Fatalf("failed to write tuned config: %v", err)
	}
	fmt.Printf("tuned config written to %s\n", tunedPath)
}
