package engine

import (
	"context"
	"testing"

	"github.com/sean-reid/crossword-generator/internal/config"
	"github.com/sean-reid/crossword-generator/internal/xwerr"
)

func relaxedConfig() config.Config {
	cfg := config.Default()
	cfg.MinDictionaryEntries = 300
	cfg.DensityFloor = 0.4
	cfg.MinWordCountFloor = 2
	cfg.MaxConnectivitySteps = 10
	cfg.Seed = 123
	return cfg
}

func TestOrchestrator_RequiresInitializeFirst(t *testing.T) {
	o := New(relaxedConfig(), nil)
	if _, err := o.EncodeProblem(5); xwerr.KindOf(err) != xwerr.NotInitialized {
		t.Fatalf("EncodeProblem() before Initialize: err = %v, want NotInitialized", err)
	}
	if _, err := o.EstimateProblemSize(5); xwerr.KindOf(err) != xwerr.NotInitialized {
		t.Fatalf("EstimateProblemSize() before Initialize: err = %v, want NotInitialized", err)
	}
}

func TestOrchestrator_SolveWithoutEncodeFails(t *testing.T) {
	o := New(relaxedConfig(), nil)
	if _, err := o.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if _, err := o.SolveProblem(context.Background()); xwerr.KindOf(err) != xwerr.NoProblemEncoded {
		t.Fatalf("SolveProblem() before EncodeProblem: err = %v, want NoProblemEncoded", err)
	}
}

func TestOrchestrator_EstimateProblemSize(t *testing.T) {
	o := New(relaxedConfig(), nil)
	if _, err := o.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	est, err := o.EstimateProblemSize(8)
	if err != nil {
		t.Fatalf("EstimateProblemSize() error = %v", err)
	}
	if est.EstimatedVariables <= 0 || est.EstimatedClauses <= 0 {
		t.Fatalf("EstimateProblemSize() = %+v, want positive estimates", est)
	}
	if est.TotalMS < est.EncodingMS {
		t.Errorf("TotalMS = %d, want >= EncodingMS %d", est.TotalMS, est.EncodingMS)
	}
}

func TestOrchestrator_GenerateCrossword(t *testing.T) {
	o := New(relaxedConfig(), nil)
	if _, err := o.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	puzzle, err := o.GenerateCrossword(context.Background(), 5)
	if err != nil {
		t.Fatalf("GenerateCrossword() error = %v", err)
	}
	if puzzle.Metadata.WordCount == 0 {
		t.Fatal("GenerateCrossword() returned a puzzle with no words")
	}

	// The Problem slot is consumed by a successful solve; a second solve
	// attempt without a fresh encode must fail.
	if _, err := o.SolveProblem(context.Background()); xwerr.KindOf(err) != xwerr.NoProblemEncoded {
		t.Fatalf("second SolveProblem() err = %v, want NoProblemEncoded", err)
	}
}

func TestOrchestrator_EncodeThenSolveRoundTrip(t *testing.T) {
	o := New(relaxedConfig(), nil)
	if _, err := o.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	stats, err := o.EncodeProblem(6)
	if err != nil {
		t.Fatalf("EncodeProblem() error = %v", err)
	}
	if stats.Variables == 0 {
		t.Fatal("EncodeProblem() reported zero variables")
	}

	puzzle, err := o.SolveProblem(context.Background())
	if err != nil {
		t.Fatalf("SolveProblem() error = %v", err)
	}
	if len(puzzle.AcrossClues)+len(puzzle.DownClues) != puzzle.Metadata.WordCount {
		t.Errorf("clue count mismatch: across=%d down=%d wordCount=%d",
			len(puzzle.AcrossClues), len(puzzle.DownClues), puzzle.Metadata.WordCount)
	}
}
