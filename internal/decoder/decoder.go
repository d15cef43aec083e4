// Package decoder turns a solved encoder.Problem into a numbered grid with
// across/down clue lists (SPEC_FULL.md §4.5), grounded on
// original_source/wasm/solution.rs's CrosswordPuzzle::from_placements and
// other_examples/nickstenning-xwd's puzzle.go row-major numbering scan.
package decoder

import (
	"sort"

	"github.com/sean-reid/crossword-generator/internal/encoder"
	"github.com/sean-reid/crossword-generator/internal/xwerr"
	"github.com/sean-reid/crossword-generator/pkg/grid"
)

// Placement is a single solved word, its anchor, and its clue.
type Placement struct {
	Word string
	Clue string
	X, Y int
	Dir  grid.Direction
}

// Clue is a numbered clue entry, ready to render alongside the grid.
type Clue struct {
	Number int            `json:"number"`
	Word   string         `json:"word"`
	Clue   string         `json:"clue"`
	X      int            `json:"x"`
	Y      int            `json:"y"`
	Dir    grid.Direction `json:"direction"`
}

// Metadata summarizes a generated puzzle per SPEC_FULL.md §4.5/§6.
type Metadata struct {
	Density     float64 `json:"density"`
	WordCount   int     `json:"word_count"`
	LetterCount int     `json:"letter_count"`
	ElapsedMS   int64   `json:"elapsed_ms"`
}

// Puzzle is the Decoder's output: a filled grid plus its clue lists and
// summary metadata.
type Puzzle struct {
	Grid        grid.Grid `json:"grid"`
	AcrossClues []Clue    `json:"across"`
	DownClues   []Clue    `json:"down"`
	Metadata    Metadata  `json:"metadata"`
}

// Decode reads a solved Problem's Model and reconstructs the grid, its
// numbering, and the clue lists. solvingMS is the wall-clock cost of the
// solve step; ElapsedMS in the resulting Metadata is problem.EncodingMS plus
// solvingMS, per SPEC_FULL.md §6's elapsed_ms contract.
func Decode(problem *encoder.Problem, solvingMS int64) (*Puzzle, error) {
	if problem == nil || problem.Model == nil {
		return nil, xwerr.New(xwerr.NoProblemEncoded, "decoder: no problem to decode")
	}

	placements, err := collectPlacements(problem)
	if err != nil {
		return nil, err
	}

	g := grid.New(problem.Size)
	for _, pl := range placements {
		for i, cell := range placementCells(pl) {
			letter := pl.Word[i]
			if existing := g.Get(cell[0], cell[1]); existing.Filled && existing.Letter != letter {
				return nil, xwerr.New(xwerr.InconsistentModel, "decoder: conflicting letters at a filled cell")
			}
			g.Set(cell[0], cell[1], grid.Filled(letter))
		}
	}

	numbers := numberCells(g)

	var across, down []Clue
	for _, pl := range placements {
		clue := Clue{
			Number: numbers[[2]int{pl.X, pl.Y}],
			Word:   pl.Word,
			Clue:   pl.Clue,
			X:      pl.X,
			Y:      pl.Y,
			Dir:    pl.Dir,
		}
		if pl.Dir == grid.Across {
			across = append(across, clue)
		} else {
			down = append(down, clue)
		}
	}
	sort.Slice(across, func(i, j int) bool { return across[i].Number < across[j].Number })
	sort.Slice(down, func(i, j int) bool { return down[i].Number < down[j].Number })

	filled := 0
	for y := 0; y < problem.Size; y++ {
		for x := 0; x < problem.Size; x++ {
			if g.Get(x, y).Filled {
				filled++
			}
		}
	}

	return &Puzzle{
		Grid:        g,
		AcrossClues: across,
		DownClues:   down,
		Metadata: Metadata{
			Density:     float64(filled) / float64(problem.Size*problem.Size),
			WordCount:   len(placements),
			LetterCount: filled,
			ElapsedMS:   problem.EncodingMS + solvingMS,
		},
	}, nil
}

// collectPlacements walks every Position and finds the (at most one, per the
// encoder's clause family (a)) word literal assigned true for it.
func collectPlacements(problem *encoder.Problem) ([]Placement, error) {
	var placements []Placement
	for posIdx, pos := range problem.Positions {
		for _, w := range problem.Pool.Bucket(pos.Length) {
			val, ok := problem.Model.Value(encoder.PlacementKey(w.Index, posIdx))
			if !ok || !val {
				continue
			}
			placements = append(placements, Placement{
				Word: w.Text,
				Clue: w.Clue,
				X:    pos.X,
				Y:    pos.Y,
				Dir:  pos.Dir,
			})
			break
		}
	}
	if len(placements) == 0 {
		return nil, xwerr.New(xwerr.InconsistentModel, "decoder: solved model has no true placements")
	}
	return placements, nil
}

func placementCells(pl Placement) [][2]int {
	cells := make([][2]int, len(pl.Word))
	for i := range cells {
		if pl.Dir == grid.Across {
			cells[i] = [2]int{pl.X + i, pl.Y}
		} else {
			cells[i] = [2]int{pl.X, pl.Y + i}
		}
	}
	return cells
}

// numberCells assigns crossword numbering: a cell is numbered iff it starts
// an across or down run, scanned row-major.
func numberCells(g grid.Grid) map[[2]int]int {
	size := g.Size()
	numbers := make(map[[2]int]int)
	next := 1
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if !g.Get(x, y).Filled {
				continue
			}
			startsAcross := (x == 0 || !g.Get(x-1, y).Filled) && x+1 < size && g.Get(x+1, y).Filled
			startsDown := (y == 0 || !g.Get(x, y-1).Filled) && y+1 < size && g.Get(x, y+1).Filled
			if startsAcross || startsDown {
				numbers[[2]int{x, y}] = next
				next++
			}
		}
	}
	return numbers
}
