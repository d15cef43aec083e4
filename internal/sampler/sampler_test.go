package sampler

import (
	"math/rand/v2"
	"testing"

	"github.com/sean-reid/crossword-generator/internal/config"
	"github.com/sean-reid/crossword-generator/internal/dictionary"
)

func loadDict(t testing.TB) *dictionary.Dictionary {
	t.Helper()
	d := dictionary.New()
	if _, err := d.Initialize(300); err != nil {
		t.Fatalf("dictionary.Initialize() error = %v", err)
	}
	return d
}

func TestSample_Deterministic(t *testing.T) {
	d := loadDict(t)
	cfg := config.Default()

	rng1 := rand.New(rand.NewPCG(42, 1024))
	rng2 := rand.New(rand.NewPCG(42, 1024))

	p1, err := Sample(d, 8, cfg, rng1)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	p2, err := Sample(d, 8, cfg, rng2)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	if len(p1.Words) != len(p2.Words) {
		t.Fatalf("pool sizes differ: %d vs %d", len(p1.Words), len(p2.Words))
	}
	for i := range p1.Words {
		if p1.Words[i].Text != p2.Words[i].Text {
			t.Errorf("word %d differs: %q vs %q", i, p1.Words[i].Text, p2.Words[i].Text)
		}
	}
}

func TestSample_AllWordsFitSize(t *testing.T) {
	d := loadDict(t)
	cfg := config.Default()
	rng := rand.New(rand.NewPCG(1, 1))

	size := 8
	pool, err := Sample(d, size, cfg, rng)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if len(pool.Words) == 0 {
		t.Fatal("Sample() returned empty pool")
	}
	for _, w := range pool.Words {
		if len(w.Text) < 3 || len(w.Text) > size {
			t.Errorf("word %q has length %d, outside [3,%d]", w.Text, len(w.Text), size)
		}
	}
}

func TestSample_BucketsSortedNoDuplicates(t *testing.T) {
	d := loadDict(t)
	cfg := config.Default()
	rng := rand.New(rand.NewPCG(7, 7))

	pool, err := Sample(d, 10, cfg, rng)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	seen := make(map[string]bool)
	for length := 3; length <= 10; length++ {
		bucket := pool.Bucket(length)
		for i, w := range bucket {
			if len(w.Text) != length {
				t.Errorf("bucket(%d) contains word of length %d: %q", length, len(w.Text), w.Text)
			}
			if i > 0 && bucket[i-1].Text >= w.Text {
				t.Errorf("bucket(%d) not sorted at index %d: %q >= %q", length, i, bucket[i-1].Text, w.Text)
			}
			if seen[w.Text] {
				t.Errorf("duplicate word %q across pool", w.Text)
			}
			seen[w.Text] = true
		}
	}
}

func TestSample_RejectsTooSmallSize(t *testing.T) {
	d := loadDict(t)
	cfg := config.Default()
	rng := rand.New(rand.NewPCG(1, 1))

	if _, err := Sample(d, 2, cfg, rng); err == nil {
		t.Fatal("Sample(size=2) error = nil, want PoolTooSmall")
	}
}
