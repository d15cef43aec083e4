// Package sampler draws a length-biased random word pool from the
// Dictionary for a given grid size (SPEC_FULL.md §4.2), grounded on the
// teacher's length-bucketing shape in internal/all_possible_lines.go
// and on original_source/wasm/lib.rs's word-selection mix.
package sampler

import (
	"math/rand/v2"
	"sort"

	"github.com/sean-reid/crossword-generator/internal/config"
	"github.com/sean-reid/crossword-generator/internal/dictionary"
	"github.com/sean-reid/crossword-generator/internal/xwerr"
)

// Word is a pool entry: a headword, its clue, and its stable index within
// the Pool. The index is the identity the Encoder uses to name placement
// variables.
type Word struct {
	Index int
	Text  string
	Clue  string
}

// Pool is an ordered, length-bucketed sample of Words. The order of Words
// is the canonical index order used throughout the Encoder.
type Pool struct {
	Words   []Word
	buckets map[int][]Word
}

// Bucket returns the Words of the given length, in pool order.
func (p Pool) Bucket(length int) []Word {
	return p.buckets[length]
}

// Sample draws a Pool for the given grid size using cfg's pool-size table
// and the §4.2 length mix, reading candidates from dict and drawing without
// replacement via rng. Deterministic for a fixed rng seed.
func Sample(dict *dictionary.Dictionary, size int, cfg config.Config, rng *rand.Rand) (Pool, error) {
	if size < 3 {
		return Pool{}, xwerr.New(xwerr.PoolTooSmall, "sampler: grid size must be at least 3")
	}

	target := cfg.PoolSize(size)

	lowMax := ceilDiv(size, 2)
	midMax := ceilDiv(3*size, 4)

	lowTarget := int(0.70 * float64(target))
	midTarget := int(0.25 * float64(target))
	highTarget := target - lowTarget - midTarget

	var words []Word
	var err error

	words, err = drawRange(dict, 3, lowMax, lowTarget, rng, words)
	if err != nil {
		return Pool{}, err
	}
	words, err = drawRange(dict, lowMax+1, midMax, midTarget, rng, words)
	if err != nil {
		return Pool{}, err
	}
	words, err = drawRange(dict, midMax+1, size, highTarget, rng, words)
	if err != nil {
		return Pool{}, err
	}

	if len(words) == 0 {
		return Pool{}, xwerr.New(xwerr.PoolTooSmall, "sampler: no words available for requested size")
	}

	for i := range words {
		words[i].Index = i
	}

	buckets := make(map[int][]Word)
	for _, w := range words {
		buckets[len(w.Text)] = append(buckets[len(w.Text)], w)
	}

	return Pool{Words: words, buckets: buckets}, nil
}

// drawRange draws up to `want` words without replacement from every bucket
// whose length falls in [lo, hi], distributing the target proportionally to
// bucket population, and appends them to out in deterministic
// (length, then alphabetical) order.
func drawRange(dict *dictionary.Dictionary, lo, hi, want int, rng *rand.Rand, out []Word) ([]Word, error) {
	if want <= 0 {
		return out, nil
	}
	if lo < 3 {
		lo = 3
	}

	type candidate struct {
		length int
		words  []dictionary.Word
	}
	var candidates []candidate
	total := 0
	for length := lo; length <= hi; length++ {
		bucket := dict.Bucket(length)
		if len(bucket) == 0 {
			continue
		}
		candidates = append(candidates, candidate{length: length, words: bucket})
		total += len(bucket)
	}
	if total == 0 {
		return out, nil
	}

	remaining := want
	for i, c := range candidates {
		share := want * len(c.words) / total
		if i == len(candidates)-1 {
			share = remaining // last bucket absorbs rounding remainder
		}
		if share > len(c.words) {
			share = len(c.words)
		}
		if share < 0 {
			share = 0
		}
		remaining -= share

		picked := drawWithoutReplacement(c.words, share, rng)
		sort.Slice(picked, func(i, j int) bool { return picked[i].Text < picked[j].Text })
		for _, w := range picked {
			out = append(out, Word{Text: w.Text, Clue: w.Clue})
		}
	}
	return out, nil
}

// drawWithoutReplacement returns n distinct elements of src chosen via a
// Fisher-Yates partial shuffle driven by rng.
func drawWithoutReplacement(src []dictionary.Word, n int, rng *rand.Rand) []dictionary.Word {
	if n >= len(src) {
		out := make([]dictionary.Word, len(src))
		copy(out, src)
		return out
	}
	pool := make([]dictionary.Word, len(src))
	copy(pool, src)
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
