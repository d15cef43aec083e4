package encoder

import "github.com/sean-reid/crossword-generator/pkg/grid"

// Position is a grid anchor with a direction and a length (SPEC_FULL.md §3).
type Position struct {
	X, Y      int
	Dir       grid.Direction
	Length    int
	fitsIndex int // stable index within Problem.Positions, assigned at enumeration time
}

// Cells returns the (x, y) coordinates this Position covers, in order from
// the anchor outward.
func (p Position) Cells() [][2]int {
	cells := make([][2]int, p.Length)
	for i := 0; i < p.Length; i++ {
		if p.Dir == grid.Across {
			cells[i] = [2]int{p.X + i, p.Y}
		} else {
			cells[i] = [2]int{p.X, p.Y + i}
		}
	}
	return cells
}

// Pre returns the cell immediately before the run, if it lies inside a
// size x size grid.
func (p Position) Pre(size int) (x, y int, ok bool) {
	if p.Dir == grid.Across {
		x, y = p.X-1, p.Y
	} else {
		x, y = p.X, p.Y-1
	}
	return x, y, x >= 0 && y >= 0 && x < size && y < size
}

// Post returns the cell immediately after the run, if it lies inside a
// size x size grid.
func (p Position) Post(size int) (x, y int, ok bool) {
	if p.Dir == grid.Across {
		x, y = p.X+p.Length, p.Y
	} else {
		x, y = p.X, p.Y+p.Length
	}
	return x, y, x >= 0 && y >= 0 && x < size && y < size
}

// enumeratePositions deterministically lists every Position that fits in a
// size x size grid, in row-major, across-then-down, ascending-length order
// (SPEC_FULL.md §4.3 step 1; the fixed order is required for deterministic
// clause ordering per size).
func enumeratePositions(size int) []Position {
	var positions []Position
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			for _, dir := range []grid.Direction{grid.Across, grid.Down} {
				for length := 3; length <= size; length++ {
					p := Position{X: x, Y: y, Dir: dir, Length: length}
					if fits(p, size) {
						p.fitsIndex = len(positions)
						positions = append(positions, p)
					}
				}
			}
		}
	}
	return positions
}

func fits(p Position, size int) bool {
	if p.Dir == grid.Across {
		return p.X+p.Length <= size
	}
	return p.Y+p.Length <= size
}
