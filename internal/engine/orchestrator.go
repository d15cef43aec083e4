// Package engine implements the Orchestrator, the three-call API
// (estimate -> encode -> solve/decode) that hosts drive to generate a
// crossword (SPEC_FULL.md §4.6), grounded on original_source/wasm/lib.rs's
// wasm_interface module: a mutex-guarded Dictionary plus a mutex-guarded
// "current problem" slot, generalized from lib.rs's two static Mutex
// globals to fields on a value hosts construct and own.
package engine

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sean-reid/crossword-generator/internal/config"
	"github.com/sean-reid/crossword-generator/internal/decoder"
	"github.com/sean-reid/crossword-generator/internal/dictionary"
	"github.com/sean-reid/crossword-generator/internal/encoder"
	"github.com/sean-reid/crossword-generator/internal/sampler"
	"github.com/sean-reid/crossword-generator/internal/satsolver"
	"github.com/sean-reid/crossword-generator/internal/xwerr"
)

// ProblemEstimate previews the cost of generating a puzzle of a given size
// before any CNF is built, per SPEC_FULL.md §4.6 step 1.
type ProblemEstimate struct {
	WordCount          int
	EstimatedVariables int
	EstimatedClauses   int
	EncodingMS         int64
	SolvingMS          int64
	TotalMS            int64
}

// Orchestrator owns the Dictionary and, between EncodeProblem and
// SolveProblem, the single in-flight encoder.Problem. A host process is
// expected to hold one Orchestrator and drive it from concurrent requests;
// the mutex serializes access to both.
type Orchestrator struct {
	mu     sync.Mutex
	cfg    config.Config
	logger *zap.Logger

	dict *dictionary.Dictionary
	rng  *rand.Rand

	problem *encoder.Problem
}

// New returns an Orchestrator with the given config. Initialize must be
// called before any other method.
func New(cfg config.Config, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{cfg: cfg, logger: logger}
}

// Initialize loads the Dictionary and seeds the sampler's RNG. Safe to call
// more than once; later calls are no-ops returning the cached Stats.
func (o *Orchestrator) Initialize() (dictionary.Stats, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.dict == nil {
		o.dict = dictionary.New()
	}
	stats, err := o.dict.Initialize(o.cfg.MinDictionaryEntries)
	if err != nil {
		o.logger.Error("dictionary initialize failed", zap.Error(err))
		return dictionary.Stats{}, err
	}

	if o.rng == nil {
		seed := o.cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		o.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}

	o.logger.Info("dictionary initialized", zap.Int("word_count", stats.WordCount))
	return stats, nil
}

// EstimateProblemSize previews the variable/clause counts and expected
// encode/solve times for a grid of the given size, without building a CNF
// model (SPEC_FULL.md §12's estimation formula, directly generalizing
// wasm/lib.rs's estimate_problem_size).
func (o *Orchestrator) EstimateProblemSize(size int) (ProblemEstimate, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.dict == nil {
		return ProblemEstimate{}, xwerr.New(xwerr.NotInitialized, "engine: dictionary not initialized")
	}

	suitable := 0
	for length := 3; length <= size; length++ {
		suitable += len(o.dict.Bucket(length))
	}
	wordCount := suitable
	if max := o.cfg.PoolSize(size); wordCount > max {
		wordCount = max
	}

	placementVars := wordCount * size * 2
	gridVars := size * size * 25
	maxDist := (size+1)*(size+1)/2 - 1
	ccVars := size * size * (maxDist + 2)
	atkVars := wordCount * 10
	estVars := placementVars + gridVars + ccVars + atkVars
	estClauses := estVars * 12

	encodingMS := int64(math.Max(float64(estVars)*0.015, 2000))
	solvingMS := int64(math.Max(float64(estVars)*o.cfg.SolveMsPerVariable, 5000))
	totalMS := int64(math.Max(float64(encodingMS+solvingMS), 1500))

	return ProblemEstimate{
		WordCount:          wordCount,
		EstimatedVariables: estVars,
		EstimatedClauses:   estClauses,
		EncodingMS:         encodingMS,
		SolvingMS:          solvingMS,
		TotalMS:            totalMS,
	}, nil
}

// EncodeProblem samples a word pool and builds the CNF model for a grid of
// the given size, stashing it as the Orchestrator's current Problem for a
// subsequent SolveProblem call.
func (o *Orchestrator) EncodeProblem(size int) (encoder.Stats, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.dict == nil {
		return encoder.Stats{}, xwerr.New(xwerr.NotInitialized, "engine: dictionary not initialized")
	}

	pool, err := sampler.Sample(o.dict, size, o.cfg, o.rng)
	if err != nil {
		return encoder.Stats{}, err
	}

	problem, stats, err := encoder.Encode(size, pool, o.cfg)
	if err != nil {
		return encoder.Stats{}, err
	}

	o.problem = problem
	o.logger.Info("problem encoded",
		zap.Int("size", size),
		zap.Int("variables", stats.Variables),
		zap.Int("clauses", stats.Clauses),
	)
	return stats, nil
}

// SolveProblem runs CDCL search on the Orchestrator's current Problem and
// decodes a satisfying assignment into a Puzzle. The Problem slot is cleared
// afterward regardless of outcome: each encoded Problem is solved at most
// once.
func (o *Orchestrator) SolveProblem(ctx context.Context) (*decoder.Puzzle, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.problem == nil {
		return nil, xwerr.New(xwerr.NoProblemEncoded, "engine: no problem encoded")
	}
	problem := o.problem
	o.problem = nil

	if o.cfg.SolverTimeoutMS > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(o.cfg.SolverTimeoutMS)*time.Millisecond)
		defer cancel()
	}

	start := time.Now()
	status, err := satsolver.Solve(ctx, problem.Model, nil)
	elapsed := time.Since(start).Milliseconds()

	switch status {
	case satsolver.Unsatisfiable:
		return nil, xwerr.New(xwerr.Unsatisfiable, "engine: no satisfying assignment found")
	case satsolver.Timeout:
		return nil, xwerr.Wrap(xwerr.InternalError, "engine: solve timed out", err)
	}

	puzzle, err := decoder.Decode(problem, elapsed)
	if err != nil {
		return nil, err
	}

	o.logger.Info("problem solved",
		zap.Int64("solve_ms", elapsed),
		zap.Int("word_count", puzzle.Metadata.WordCount),
		zap.Float64("density", puzzle.Metadata.Density),
	)
	return puzzle, nil
}

// GenerateCrossword runs EncodeProblem followed by SolveProblem in one call,
// for hosts that don't need the intermediate estimate/encode stats.
func (o *Orchestrator) GenerateCrossword(ctx context.Context, size int) (*decoder.Puzzle, error) {
	if _, err := o.EncodeProblem(size); err != nil {
		return nil, err
	}
	return o.SolveProblem(ctx)
}
