// Package encoder builds a CNF Problem whose models correspond to valid,
// dense, connected crosswords (SPEC_FULL.md §4.3), grounded directly on
// original_source/src/wasm/src/encoder.rs's clause families, generalized
// from that file's varisat-specific variable bookkeeping to a generic
// satsolver.Model[Key].
package encoder

import (
	"math"
	"time"

	"github.com/sean-reid/crossword-generator/internal/config"
	"github.com/sean-reid/crossword-generator/internal/sampler"
	"github.com/sean-reid/crossword-generator/internal/satsolver"
	"github.com/sean-reid/crossword-generator/internal/xwerr"
	"github.com/sean-reid/crossword-generator/pkg/charset"
)

// Problem is the Encoder's output: the CNF model together with everything
// the Decoder needs to translate a satisfying assignment back into a grid
// (SPEC_FULL.md §3's Problem data model).
type Problem struct {
	Size             int
	Pool             sampler.Pool
	Positions        []Position
	Model            *satsolver.Model[Key]
	ConnectivitySteK int   // K, the reachability unrolling depth actually used
	EncodingMS       int64 // wall-clock cost of the Encode call that produced this Problem
}

// Stats summarizes an Encode call per SPEC_FULL.md §4.3's output contract.
type Stats struct {
	Variables        int
	Clauses          int
	EncodingMS       int64
	EstimatedSolveMS float64
}

type coord struct{ x, y int }

type cellLetter struct {
	x, y   int
	letter byte
}

// Encode builds the Problem for the given grid size and sampled Pool.
func Encode(size int, pool sampler.Pool, cfg config.Config) (*Problem, Stats, error) {
	start := time.Now()

	if size < 3 {
		return nil, Stats{}, xwerr.New(xwerr.PoolTooSmall, "encoder: grid size must be at least 3")
	}

	positions := enumeratePositions(size)
	m := satsolver.NewModel[Key]()

	candidatesByPosition := make([][]int, len(positions))
	candidatesByWord := make(map[int][]int)
	for posIdx, pos := range positions {
		for _, w := range pool.Bucket(pos.Length) {
			candidatesByPosition[posIdx] = append(candidatesByPosition[posIdx], w.Index)
			candidatesByWord[w.Index] = append(candidatesByWord[w.Index], posIdx)
		}
	}

	placementLit := func(wordIdx, posIdx int) satsolver.Literal {
		return m.Literal(PlacementKey(wordIdx, posIdx))
	}

	// (a) placement uniqueness per position.
	for posIdx := range positions {
		cands := candidatesByPosition[posIdx]
		if len(cands) < 2 {
			continue
		}
		lits := make([]satsolver.Literal, len(cands))
		for i, w := range cands {
			lits[i] = placementLit(w, posIdx)
		}
		m.AtMostOne(lits)
	}

	// (b) uniqueness of position for a word.
	for _, w := range pool.Words {
		posIdxs := candidatesByWord[w.Index]
		if len(posIdxs) < 2 {
			continue
		}
		lits := make([]satsolver.Literal, len(posIdxs))
		for i, posIdx := range posIdxs {
			lits[i] = placementLit(w.Index, posIdx)
		}
		m.AtMostOne(lits)
	}

	// Per-cell letter alphabets (pkg/charset) and the (cell, letter) ->
	// justifying placements index used by clause family (e), built
	// alongside (d) and (f).
	alphabets := make(map[coord]*charset.Set)
	justify := make(map[cellLetter][]satsolver.Literal)

	alphabetAt := func(c coord) *charset.Set {
		s, ok := alphabets[c]
		if !ok {
			s = charset.New()
			alphabets[c] = s
		}
		return s
	}

	for posIdx, pos := range positions {
		cells := pos.Cells()
		for _, w := range candidatesByPosition[posIdx] {
			word := pool.Words[w]
			lit := placementLit(w, posIdx)

			for i, cell := range cells {
				x, y := cell[0], cell[1]
				letter := word.Text[i]
				alphabetAt(coord{x, y}).Add(letter)

				cLit := m.Literal(CellLetterKey(x, y, letter))
				m.Implies(lit, cLit) // (d) placement implies letter
				justify[cellLetter{x, y, letter}] = append(justify[cellLetter{x, y, letter}], lit)

				m.Implies(lit, m.Literal(OccupancyKey(x, y))) // (d) placement implies filled
			}

			// (f) boundary rule.
			if px, py, ok := pos.Pre(size); ok {
				m.Implies(lit, m.Literal(OccupancyKey(px, py)).Not())
			}
			if px, py, ok := pos.Post(size); ok {
				m.Implies(lit, m.Literal(OccupancyKey(px, py)).Not())
			}
		}
	}

	cellsOrder := make([]coord, 0, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			cellsOrder = append(cellsOrder, coord{x, y})
		}
	}

	// (c) cell-letter mutual exclusion, and F(x,y) <-> OR_l C(x,y,l).
	for _, c := range cellsOrder {
		set, ok := alphabets[c]
		fLit := m.Literal(OccupancyKey(c.x, c.y))
		if !ok || set.Count() == 0 {
			// No placement can ever put a letter here: the cell can never
			// be filled.
			m.AddUnary(fLit.Not())
			continue
		}
		letters := set.Letters()
		cLits := make([]satsolver.Literal, len(letters))
		for i, l := range letters {
			cLits[i] = m.Literal(CellLetterKey(c.x, c.y, l))
		}
		m.AtMostOne(cLits)
		m.Implies(fLit, cLits...)
		for _, cl := range cLits {
			m.Implies(cl, fLit)
		}
	}

	// (e) bidirectional spelling: no letter without a justifying placement.
	for _, c := range cellsOrder {
		set, ok := alphabets[c]
		if !ok {
			continue
		}
		for _, l := range set.Letters() {
			cLit := m.Literal(CellLetterKey(c.x, c.y, l))
			js := justify[cellLetter{c.x, c.y, l}]
			if len(js) == 0 {
				m.AddUnary(cLit.Not())
				continue
			}
			m.Implies(cLit, js...)
		}
	}

	// Root selection: the smallest-indexed (row-major) filled cell is root.
	rootLits := make([]satsolver.Literal, len(cellsOrder))
	for i, c := range cellsOrder {
		rl := m.Literal(rootKey(c.x, c.y))
		rootLits[i] = rl
		fLit := m.Literal(OccupancyKey(c.x, c.y))
		m.Implies(rl, fLit)

		clauseLits := []satsolver.Literal{fLit.Not()}
		for j := 0; j < i; j++ {
			clauseLits = append(clauseLits, m.Literal(OccupancyKey(cellsOrder[j].x, cellsOrder[j].y)))
		}
		clauseLits = append(clauseLits, rl)
		m.AddClause(clauseLits...)
	}
	m.AtMostOne(rootLits)

	// (j) connectivity via layered reachability.
	K := 2 * size
	if cfg.MaxConnectivitySteps > 0 && cfg.MaxConnectivitySteps < K {
		K = cfg.MaxConnectivitySteps
	}

	for _, c := range cellsOrder {
		r0 := m.Literal(ReachabilityKey(c.x, c.y, 0))
		rl := m.Literal(rootKey(c.x, c.y))
		m.Implies(rl, r0)
		m.Implies(r0, rl)
	}

	for k := 1; k <= K; k++ {
		for _, c := range cellsOrder {
			rck := m.Literal(ReachabilityKey(c.x, c.y, k))
			rckm1 := m.Literal(ReachabilityKey(c.x, c.y, k-1))
			fLit := m.Literal(OccupancyKey(c.x, c.y))

			m.Implies(rckm1, rck)

			neighborLits := neighborReachLits(m, c, k-1, size)
			for _, nl := range neighborLits {
				m.AddClause(fLit.Not(), nl.Not(), rck)
			}

			m.AddClause(rck.Not(), rckm1, fLit)
			backward := append([]satsolver.Literal{rck.Not(), rckm1}, neighborLits...)
			m.AddClause(backward...)
		}
	}

	for _, c := range cellsOrder {
		fLit := m.Literal(OccupancyKey(c.x, c.y))
		rK := m.Literal(ReachabilityKey(c.x, c.y, K))
		m.Implies(fLit, rK)
	}

	// (h) density.
	densityFloor := cfg.DensityFloor
	if densityFloor <= 0 {
		densityFloor = 0.75
	}
	need := int(math.Ceil(densityFloor * float64(size*size)))
	allF := make([]satsolver.Literal, len(cellsOrder))
	for i, c := range cellsOrder {
		allF[i] = m.Literal(OccupancyKey(c.x, c.y))
	}
	m.AtLeastK(allF, need)

	// (i) minimum word count.
	var allP []satsolver.Literal
	for posIdx := range positions {
		for _, w := range candidatesByPosition[posIdx] {
			allP = append(allP, placementLit(w, posIdx))
		}
	}
	m.AtLeastK(allP, cfg.MinWordCount(size))

	encodingMS := time.Since(start).Milliseconds()
	stats := Stats{
		Variables:        m.NumVariables(),
		Clauses:          m.NumClauses(),
		EncodingMS:       encodingMS,
		EstimatedSolveMS: cfg.SolveMsPerVariable * float64(m.NumVariables()),
	}

	return &Problem{
		Size:             size,
		Pool:             pool,
		Positions:        positions,
		Model:            m,
		ConnectivitySteK: K,
		EncodingMS:       encodingMS,
	}, stats, nil
}

func neighborReachLits(m *satsolver.Model[Key], c coord, step, size int) []satsolver.Literal {
	deltas := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	lits := make([]satsolver.Literal, 0, 4)
	for _, d := range deltas {
		nx, ny := c.x+d[0], c.y+d[1]
		if nx < 0 || ny < 0 || nx >= size || ny >= size {
			continue
		}
		lits = append(lits, m.Literal(ReachabilityKey(nx, ny, step)))
	}
	return lits
}
