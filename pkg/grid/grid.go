// Package grid holds the crossword grid representation shared by the
// encoder, decoder, and engine packages.
package grid

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Direction is the orientation of a word placement in the grid.
type Direction int

const (
	Across Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Down {
		return "Down"
	}
	return "Across"
}

// MarshalJSON renders a Direction as its lowercase name, matching the wire
// format hosts consuming the generated puzzle expect.
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(d.String()))
}

// Cell is a single grid position. A Cell with Filled == false is a block;
// Letter is meaningless in that case. This mirrors the puzzle record's
// Option<letter> contract: a block serializes as null, a filled cell as its
// uppercase letter.
type Cell struct {
	Filled bool
	Letter byte // 'A'..'Z', valid only when Filled
}

// Block returns the zero-value block cell.
func Block() Cell {
	return Cell{}
}

// Filled returns a filled cell holding the given uppercase letter.
func Filled(letter byte) Cell {
	return Cell{Filled: true, Letter: letter}
}

// Grid is a square size x size board of Cells, addressed Get(x, y) with
// (0,0) at the top-left, row-major (y outer, x inner).
type Grid struct {
	size  int
	cells [][]Cell
}

// New returns a Grid of the given size with every cell a block.
func New(size int) Grid {
	cells := make([][]Cell, size)
	for y := range cells {
		cells[y] = make([]Cell, size)
	}
	return Grid{size: size, cells: cells}
}

func (g Grid) Size() int {
	return g.size
}

func (g Grid) Get(x, y int) Cell {
	return g.cells[y][x]
}

func (g *Grid) Set(x, y int, c Cell) {
	g.cells[y][x] = c
}

// InBounds reports whether (x, y) is a valid cell coordinate for this grid.
func (g Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.size && y >= 0 && y < g.size
}

// Repr renders the grid as size lines, one character per cell: the
// uppercase letter for filled cells, '#' for blocks. Useful for debugging
// and for golden-output tests.
func (g Grid) Repr() string {
	lines := make([]string, g.size)
	for y := 0; y < g.size; y++ {
		var b strings.Builder
		for x := 0; x < g.size; x++ {
			c := g.cells[y][x]
			if c.Filled {
				b.WriteByte(c.Letter)
			} else {
				b.WriteByte('#')
			}
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

func (g Grid) DebugString() string {
	return fmt.Sprintf("Grid{size: %d}\n%s", g.size, g.Repr())
}

// Rows exposes the raw cell matrix to callers that want to walk cells
// directly rather than through MarshalJSON or Repr.
func (g Grid) Rows() [][]Cell {
	return g.cells
}

// MarshalJSON renders the grid as rows of `letter | null`, one entry per
// cell: the uppercase letter for a filled cell, null for a block.
func (g Grid) MarshalJSON() ([]byte, error) {
	rows := make([][]*string, g.size)
	for y, row := range g.cells {
		rows[y] = make([]*string, g.size)
		for x, c := range row {
			if c.Filled {
				s := string(c.Letter)
				rows[y][x] = &s
			}
		}
	}
	return json.Marshal(rows)
}
