package encoder

// kind distinguishes the variable families allocated by the encoder:
// placement P(w,p), cell letter C(x,y,l), cell occupancy F(x,y),
// reachability R(x,y,k), and the internal root-selector variable used to
// pin the connectivity constraint's root cell.
type kind int

const (
	kindPlacement kind = iota
	kindCellLetter
	kindOccupancy
	kindReachability
	kindRoot
)

// Key is the comparable variable key used to address every Boolean in the
// encoder's CNF model. The decoder and engine packages query a solved
// Problem's Model by reconstructing these keys rather than walking raw
// variable indices, mirroring spjmurray-go-sat's (i, j, n)-keyed Sudoku
// example generalized to the crossword domain's own coordinate types.
type Key struct {
	kind   kind
	word   int // kindPlacement
	pos    int // kindPlacement
	x      int // kindCellLetter, kindOccupancy, kindReachability, kindRoot
	y      int // kindCellLetter, kindOccupancy, kindReachability, kindRoot
	letter byte
	step   int // kindReachability
}

// PlacementKey names P(w, p): word index w occupies Position index p.
func PlacementKey(wordIndex, posIndex int) Key {
	return Key{kind: kindPlacement, word: wordIndex, pos: posIndex}
}

// CellLetterKey names C(x, y, letter).
func CellLetterKey(x, y int, letter byte) Key {
	return Key{kind: kindCellLetter, x: x, y: y, letter: letter}
}

// OccupancyKey names F(x, y).
func OccupancyKey(x, y int) Key {
	return Key{kind: kindOccupancy, x: x, y: y}
}

// ReachabilityKey names R(x, y, step).
func ReachabilityKey(x, y, step int) Key {
	return Key{kind: kindReachability, x: x, y: y, step: step}
}

func rootKey(x, y int) Key {
	return Key{kind: kindRoot, x: x, y: y}
}
