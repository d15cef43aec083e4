// Package config holds the engine's configuration knobs (§6 of
// SPEC_FULL.md), loadable from YAML with documented defaults.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every optional knob the engine exposes to hosts. Every field
// has a default matching SPEC_FULL.md §6; a zero-value Config is invalid and
// callers should obtain one via Default() or Load().
type Config struct {
	// DensityFloor is the minimum fraction of filled cells required for a
	// generation to count as dense enough. Default 0.75.
	DensityFloor float64 `yaml:"density_floor"`

	// MinWordCountFloor is added to the size-derived minimum word count
	// (see MinWordCount). Default 6.
	MinWordCountFloor int `yaml:"min_word_count_floor"`

	// PoolSizeOverrides maps a grid size to an explicit target pool size,
	// overriding the §4.2 default table.
	PoolSizeOverrides map[int]int `yaml:"pool_size_overrides"`

	// Seed seeds the sampler's RNG for reproducibility. Zero means "derive
	// from wall-clock time" at the call site; callers that need determinism
	// must set this explicitly.
	Seed uint64 `yaml:"seed"`

	// SolverTimeoutMS bounds the solver step; zero means no timeout.
	SolverTimeoutMS int `yaml:"solver_timeout_ms"`

	// SolveMsPerVariable is the empirical linear estimate coefficient cited
	// in SPEC_FULL.md §4.3/§9 (0.085 ms/variable from the source material).
	// Implementers are expected to recalibrate this per deployment.
	SolveMsPerVariable float64 `yaml:"solve_ms_per_variable"`

	// MaxConnectivitySteps caps the reachability unrolling depth K
	// (SPEC_FULL.md §4.3(j), §12) instead of always using the full 2*size
	// diameter bound, trading completeness at extreme sizes for encoder
	// performance. Zero means "use 2*size uncapped".
	MaxConnectivitySteps int `yaml:"max_connectivity_steps"`

	// MinDictionaryEntries is the Dictionary's acceptance threshold
	// (SPEC_FULL.md §4.1). A production deployment with a large embedded
	// corpus should raise this toward 1000; the threshold here matches the
	// smaller curated corpus this module actually embeds (internal/dictionary,
	// go:embed testdata/corpus.txt, 355 accepted entries), with headroom left
	// for a handful of entries to be added or trimmed without tripping
	// Initialize.
	MinDictionaryEntries int `yaml:"min_dictionary_entries"`
}

// Default returns the configuration described by SPEC_FULL.md §6, calibrated
// to the corpus this module ships.
func Default() Config {
	return Config{
		DensityFloor:         0.75,
		MinWordCountFloor:    6,
		PoolSizeOverrides:    map[int]int{8: 80, 10: 120, 12: 150, 16: 220},
		Seed:                 0,
		SolverTimeoutMS:      0,
		SolveMsPerVariable:   0.085,
		MaxConnectivitySteps: 0,
		MinDictionaryEntries: 300,
	}
}

// Load reads a YAML document at path, layering it over Default().
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// PoolSize returns the target pool size for the given grid size, applying
// overrides, then the §4.2 default table, then the `10*size` fallback.
func (c Config) PoolSize(size int) int {
	if c.PoolSizeOverrides != nil {
		if v, ok := c.PoolSizeOverrides[size]; ok {
			return v
		}
	}
	switch size {
	case 8:
		return 80
	case 10:
		return 120
	case 12:
		return 150
	case 16:
		return 220
	default:
		return 10 * size
	}
}

// MinWordCount returns the minimum placement count required for the given
// grid size, per SPEC_FULL.md §4.3(i).
func (c Config) MinWordCount(size int) int {
	floor := c.MinWordCountFloor
	if floor == 0 {
		floor = 6
	}
	derived := (size + 1) / 2 // ceil(0.5*size)
	m := floor + derived
	if m < 6 {
		m = 6
	}
	return m
}
