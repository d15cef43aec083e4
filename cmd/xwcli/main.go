package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/sean-reid/crossword-generator/internal/config"
	"github.com/sean-reid/crossword-generator/internal/decoder"
	"github.com/sean-reid/crossword-generator/internal/engine"
	"github.com/sean-reid/crossword-generator/internal/xwlog"
)

var (
	configPath string
	gridSize   int
	seed       uint64
	timeout    time.Duration

	rootCmd = &cobra.Command{
		Use:   "xwgen",
		Short: "Generate crossword puzzles from a SAT-encoded word placement problem",
	}

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate a single crossword puzzle and print it to stdout",
		RunE:  runGenerate,
	}

	estimateCmd = &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the variable and clause counts for a grid size without solving",
		RunE:  runEstimate,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (built-in defaults if omitted)")
	rootCmd.PersistentFlags().IntVar(&gridSize, "size", 8, "grid side length")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "RNG seed (0 derives one from wall-clock time)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "solver timeout")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(estimateCmd)
}

func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func newOrchestrator() (*engine.Orchestrator, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	logger, err := xwlog.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	o := engine.New(cfg, logger)
	if _, err := o.Initialize(); err != nil {
		return nil, fmt.Errorf("initializing dictionary: %w", err)
	}
	return o, nil
}

func runEstimate(cmd *cobra.Command, args []string) error {
	o, err := newOrchestrator()
	if err != nil {
		return err
	}

	est, err := o.EstimateProblemSize(gridSize)
	if err != nil {
		return err
	}

	fmt.Printf("words:     %d\n", est.WordCount)
	fmt.Printf("variables: %d (est)\n", est.EstimatedVariables)
	fmt.Printf("clauses:   %d (est)\n", est.EstimatedClauses)
	fmt.Printf("encoding:  %dms (est)\n", est.EncodingMS)
	fmt.Printf("solving:   %dms (est)\n", est.SolvingMS)
	fmt.Printf("total:     %dms (est)\n", est.TotalMS)
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	o, err := newOrchestrator()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	puzzle, err := o.GenerateCrossword(ctx, gridSize)
	if err != nil {
		return err
	}

	printPuzzle(puzzle)
	return nil
}

func printPuzzle(p *decoder.Puzzle) {
	fmt.Println(p.Grid.Repr())
	fmt.Println()
	fmt.Printf("%d words, %.0f%% density, %dms\n",
		p.Metadata.WordCount, p.Metadata.Density*100, p.Metadata.ElapsedMS)

	fmt.Println("\nAcross")
	for _, c := range p.AcrossClues {
		fmt.Printf("%d. %s (%s)\n", c.Number, c.Clue, c.Word)
	}
	fmt.Println("\nDown")
	for _, c := range p.DownClues {
		fmt.Printf("%d. %s (%s)\n", c.Number, c.Clue, c.Word)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
