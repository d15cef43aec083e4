package encoder

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/sean-reid/crossword-generator/internal/config"
	"github.com/sean-reid/crossword-generator/internal/dictionary"
	"github.com/sean-reid/crossword-generator/internal/sampler"
	"github.com/sean-reid/crossword-generator/internal/satsolver"
)

func loadDict(t testing.TB) *dictionary.Dictionary {
	t.Helper()
	d := dictionary.New()
	if _, err := d.Initialize(300); err != nil {
		t.Fatalf("dictionary.Initialize() error = %v", err)
	}
	return d
}

func TestEncode_RejectsTooSmallGrid(t *testing.T) {
	pool := sampler.Pool{}
	if _, _, err := Encode(2, pool, config.Default()); err == nil {
		t.Fatal("Encode(size=2) error = nil, want PoolTooSmall")
	}
}

func TestEnumeratePositions_LengthsAndBounds(t *testing.T) {
	positions := enumeratePositions(5)
	if len(positions) == 0 {
		t.Fatal("enumeratePositions(5) returned nothing")
	}
	for _, p := range positions {
		if p.Length < 3 || p.Length > 5 {
			t.Errorf("position %+v has out-of-range length", p)
		}
		for _, cell := range p.Cells() {
			if cell[0] < 0 || cell[0] >= 5 || cell[1] < 0 || cell[1] >= 5 {
				t.Errorf("position %+v covers out-of-bounds cell %v", p, cell)
			}
		}
	}
}

func TestEncode_StatsNonZero(t *testing.T) {
	d := loadDict(t)
	cfg := config.Default()
	rng := rand.New(rand.NewPCG(1, 1))

	pool, err := sampler.Sample(d, 6, cfg, rng)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	_, stats, err := Encode(6, pool, cfg)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if stats.Variables == 0 || stats.Clauses == 0 {
		t.Fatalf("Encode() stats = %+v, want nonzero", stats)
	}
	if stats.EstimatedSolveMS <= 0 {
		t.Errorf("EstimatedSolveMS = %v, want > 0", stats.EstimatedSolveMS)
	}
}

func TestEncode_DeterministicClauseCount(t *testing.T) {
	d := loadDict(t)
	cfg := config.Default()

	pool1, err := sampler.Sample(d, 6, cfg, rand.New(rand.NewPCG(9, 9)))
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	pool2, err := sampler.Sample(d, 6, cfg, rand.New(rand.NewPCG(9, 9)))
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	_, stats1, err := Encode(6, pool1, cfg)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	_, stats2, err := Encode(6, pool2, cfg)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if stats1.Variables != stats2.Variables || stats1.Clauses != stats2.Clauses {
		t.Errorf("Encode() not deterministic: %+v vs %+v", stats1, stats2)
	}
}

// TestEncode_SolvesToConnectedDenseGrid runs the sample -> encode -> solve
// pipeline on a small grid with relaxed density and connectivity bounds,
// then checks that the solved grid has filled cells, meets the configured
// density floor, and that every filled cell is reachable from the root
// within the configured step bound.
func TestEncode_SolvesToConnectedDenseGrid(t *testing.T) {
	d := loadDict(t)
	cfg := config.Default()
	cfg.DensityFloor = 0.4
	cfg.MinWordCountFloor = 2
	cfg.MaxConnectivitySteps = 10

	size := 5
	pool, err := sampler.Sample(d, size, cfg, rand.New(rand.NewPCG(3, 3)))
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	problem, _, err := Encode(size, pool, cfg)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	status, err := satsolver.Solve(context.Background(), problem.Model, nil)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if status != satsolver.Satisfiable {
		t.Fatalf("Solve() status = %v, want Satisfiable", status)
	}

	filled := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			f, ok := problem.Model.Value(OccupancyKey(x, y))
			if !ok || !f {
				continue
			}
			filled++
			if reached, ok := problem.Model.Value(ReachabilityKey(x, y, problem.ConnectivitySteK)); !ok || !reached {
				t.Errorf("filled cell (%d,%d) not reachable within %d steps", x, y, problem.ConnectivitySteK)
			}
		}
	}
	if filled == 0 {
		t.Fatal("solved grid has no filled cells")
	}
	if float64(filled) < cfg.DensityFloor*float64(size*size) {
		t.Errorf("filled cells = %d, want density >= %v of %d cells", filled, cfg.DensityFloor, size*size)
	}
}
