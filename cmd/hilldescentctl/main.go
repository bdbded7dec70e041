// Package main provides the hilldescentctl CLI for driving the epoch engine
// against a handful of built-in objective functions from the command line.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/cainem/hilldescent-go/engine"
	"github.com/cainem/hilldescent-go/grid"
	"github.com/cainem/hilldescent-go/objective"
	"github.com/google/uuid"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

var (
	epochs             int
	populationSize     uint
	targetRegions      uint
	worldSeed          int64
	paramRange         string
	objectiveName      string
	shift              float64
	floorValue         float64
	workers            int
	verbose            bool
	showVersion        bool
	outputDir          string
	checkpointPath     string
	checkpointInterval int
)

func init() {
	flag.IntVar(&epochs, "epochs", 200, "Number of epochs to run")
	flag.UintVar(&populationSize, "population-size", 200, "Total organism cap")
	flag.UintVar(&targetRegions, "target-regions", 20, "Non-empty region count grid adaptation stops expanding at")
	flag.Int64Var(&worldSeed, "world-seed", 0, "Deterministic RNG root (0 = derive from current time)")
	flag.StringVar(&paramRange, "param-range", "-10:10", "Comma-separated lo:hi bounds, one per problem parameter")
	flag.StringVar(&objectiveName, "objective", "sphere", "Objective function: sphere, rosenbrock2d, shifted-parabola")
	flag.Float64Var(&shift, "shift", -10, "Shift constant for the shifted-parabola objective")
	flag.Float64Var(&floorValue, "floor", 0, "Floor value the objective is scored against")
	flag.IntVar(&workers, "workers", 0, "Phase 1 worker count (0 = auto-detect CPU count)")
	flag.BoolVar(&verbose, "verbose", false, "Enable progress logging")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.StringVar(&outputDir, "output-dir", "", "Output directory for the final state dump (default: output/run-TIMESTAMP)")
	flag.StringVar(&checkpointPath, "checkpoint", "", "Resume from this checkpoint file instead of starting fresh")
	flag.IntVar(&checkpointInterval, "checkpoint-interval", 10, "Auto-save checkpoint every N epochs (0 = disabled)")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Printf("hilldescentctl %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	if outputDir == "" {
		timestamp := time.Now().Format("20060102-150405")
		outputDir = filepath.Join("output", fmt.Sprintf("run-%s", timestamp))
	}
	if worldSeed == 0 {
		worldSeed = time.Now().UnixNano()
	}

	obj, err := buildObjective(objectiveName, shift)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var e *engine.Engine
	var runID string

	if checkpointPath != "" {
		fmt.Printf("Resuming from checkpoint: %s\n", checkpointPath)
		e, err = engine.ResumeFromCheckpoint(checkpointPath, obj)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading checkpoint: %v\n", err)
			os.Exit(1)
		}
		runID = e.RunID
		fmt.Printf("Resumed at epoch %d\n\n", e.Epoch)
	} else {
		bounds, parseErr := parseParamRange(paramRange)
		if parseErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", parseErr)
			os.Exit(1)
		}
		cfg := &engine.Config{
			PopulationSize: uint32(populationSize),
			TargetRegions:  uint32(targetRegions),
			WorldSeed:      uint64(worldSeed),
			ParamRange:     bounds,
			NumWorkers:     workers,
			Verbose:        verbose,
		}
		e = engine.NewEngine(cfg, obj)
		runID = uuid.NewString()
		e.RunID = runID
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	printBanner(runID)

	var checkpointer *engine.AutoCheckpointer
	cpPath := filepath.Join(outputDir, "checkpoint.json")
	if checkpointInterval > 0 {
		checkpointer = engine.NewAutoCheckpointer(e, cpPath, checkpointInterval)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n\nInterrupted! Saving checkpoint...")
		if checkpointer != nil {
			if err := checkpointer.SaveFinal(); err != nil {
				fmt.Fprintf(os.Stderr, "Error saving checkpoint: %v\n", err)
			} else {
				fmt.Printf("Checkpoint saved to %s\n", cpPath)
			}
		}
		os.Exit(130)
	}()

	data := engine.NoneData{FloorValue: floorValue}
	startTime := time.Now()
	startEpoch := e.Epoch

	fmt.Println("Starting run...")
	for i := 0; i < epochs; i++ {
		atResolutionLimit := e.TrainingRun(data)

		if verbose || (i+1)%10 == 0 || i == epochs-1 {
			elapsed := time.Since(startTime)
			fmt.Printf("\rEpoch %6d | Best: %12.6f | %s", e.Epoch, e.GetBestScore(), formatDuration(elapsed))
		}
		if verbose && atResolutionLimit {
			log.Printf("grid adaptation at resolution limit at epoch %d", e.Epoch)
		}

		if checkpointer != nil {
			if err := checkpointer.Save(int(e.Epoch - startEpoch)); err != nil {
				fmt.Fprintf(os.Stderr, "\nWarning: checkpoint save failed: %v\n", err)
			}
		}
	}

	totalTime := time.Since(startTime)
	fmt.Printf("\n\nRun complete in %s\n", formatDuration(totalTime))

	if checkpointer != nil {
		if err := checkpointer.SaveFinal(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: final checkpoint save failed: %v\n", err)
		}
	}

	statePath := filepath.Join(outputDir, "state.json")
	if err := writeStateJSON(e, runID, statePath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to write state dump: %v\n", err)
	}

	printSummary(e, totalTime, outputDir)
}

func buildObjective(name string, shift float64) (objective.Objective, error) {
	switch strings.ToLower(name) {
	case "sphere":
		return objective.Sphere{}, nil
	case "rosenbrock2d", "rosenbrock":
		return objective.Rosenbrock2D{}, nil
	case "shifted-parabola", "shiftedparabola":
		return objective.ShiftedParabola{Shift: shift}, nil
	default:
		return nil, fmt.Errorf("unknown objective %q (want sphere, rosenbrock2d, or shifted-parabola)", name)
	}
}

func parseParamRange(spec string) ([]grid.Bounds, error) {
	parts := strings.Split(spec, ",")
	bounds := make([]grid.Bounds, 0, len(parts))
	for _, part := range parts {
		loHi := strings.Split(strings.TrimSpace(part), ":")
		if len(loHi) != 2 {
			return nil, fmt.Errorf("malformed param-range segment %q, want lo:hi", part)
		}
		lo, err := strconv.ParseFloat(loHi[0], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed lo bound %q: %w", loHi[0], err)
		}
		hi, err := strconv.ParseFloat(loHi[1], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed hi bound %q: %w", loHi[1], err)
		}
		bounds = append(bounds, grid.Bounds{Lo: lo, Hi: hi})
	}
	return bounds, nil
}

func writeStateJSON(e *engine.Engine, runID, path string) error {
	data, err := e.GetStateJSON()
	if err != nil {
		return err
	}
	wrapped := fmt.Sprintf(`{"run_id":%q,"state":%s}`, runID, data)
	return os.WriteFile(path, []byte(wrapped), 0644)
}

func printBanner(runID string) {
	fmt.Println()
	fmt.Println("====================================================")
	fmt.Println("               hilldescent epoch engine")
	fmt.Println("====================================================")
	fmt.Println()
	fmt.Printf("Run ID:          %s\n", runID)
	fmt.Printf("Population:      %d\n", populationSize)
	fmt.Printf("Target regions:  %d\n", targetRegions)
	fmt.Printf("Epochs:          %d\n", epochs)
	fmt.Printf("Objective:       %s\n", objectiveName)
	fmt.Printf("Workers:         %d (0=auto)\n", workers)
	fmt.Printf("Output:          %s\n", outputDir)
	if checkpointInterval > 0 {
		fmt.Printf("Checkpoint:      every %d epochs\n", checkpointInterval)
	}
	fmt.Println()
}

func printSummary(e *engine.Engine, totalTime time.Duration, outputDir string) {
	fmt.Println()
	fmt.Println("====================================================")
	fmt.Println("                    RUN SUMMARY")
	fmt.Println("====================================================")
	fmt.Printf("  Total Time:   %s\n", formatDuration(totalTime))
	fmt.Printf("  Epochs:       %d\n", e.Epoch)
	fmt.Printf("  Best Score:   %.6f\n", e.GetBestScore())
	if params := e.GetBestParams(); params != nil {
		fmt.Printf("  Best Params:  %v\n", params)
	}
	fmt.Printf("  Output:       %s\n", outputDir)
	fmt.Println("====================================================")
	fmt.Println()
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
