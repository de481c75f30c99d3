// Package board implements Threes' packed 4x4 board: a single uint64
// holding sixteen 4-bit card indices, together with the shift-merge rule
// that is the heart of the game. Squares collapse into 4-bit fields of a
// single machine word rather than a slice of structs, so a board is
// cheap to copy, compare, and hash.
package board

import "github.com/domino14/threesbot/cardtable"

// Board is the entire board state: sixteen 4-bit cells packed into a
// uint64. Cell (x,y) occupies bits [4*(x+4y) .. 4*(x+4y)+3]. x is the
// column 0..3 (left to right), y is the row 0..3 (top to bottom). Boards
// are immutable by value: every mutating operation returns a new Board.
type Board uint64

// Direction is one of the four shift directions a player can choose.
// The zero value is Left. Iteration order Left, Right, Up, Down is also
// the fixed tie-break order used by the search package.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

var directionNames = [4]string{"Left", "Right", "Up", "Down"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "Unknown"
}

// Directions lists all four directions in fixed tie-break order.
var Directions = [4]Direction{Left, Right, Up, Down}

// Cell is a board coordinate. Sentinel marks "no cell" (e.g. a line that
// did not move during a shift, so no new card can land there).
type Cell struct {
	X, Y int8
}

// Sentinel is the placeholder Cell meaning "not applicable".
var Sentinel = Cell{X: -1, Y: -1}

// Placements is the set of (up to four) candidate cells a new card may
// land in after a shift: one per row or column, in a fixed order for the
// shift's direction, with Sentinel standing in for a line that did not
// move.
type Placements [4]Cell

// Get extracts the card index at (x, y).
func (b Board) Get(x, y int) int {
	shift := uint(4 * (x + 4*y))
	return int((uint64(b) >> shift) & 0xF)
}

// Set returns a new Board with the cell at (x, y) set to v (0..15).
func (b Board) Set(x, y, v int) Board {
	shift := uint(4 * (x + 4*y))
	cleared := uint64(b) &^ (uint64(0xF) << shift)
	return Board(cleared | (uint64(v&0xF) << shift))
}

// TotalScore sums the end-of-game score contribution of every cell.
func (b Board) TotalScore() int {
	total := 0
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			total += cardtable.Score(b.Get(x, y))
		}
	}
	return total
}

// MaxCardIndex returns the largest card index present on the board.
func (b Board) MaxCardIndex() int {
	max := 0
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if v := b.Get(x, y); v > max {
				max = v
			}
		}
	}
	return max
}

// CanCardsMerge reports whether a card of index a, placed next to a card
// of index b on the side farther from the shift edge (so a is the source
// shifted into b), would cause b to change under the 4.B rule. That is
// true for the merging pairs, and also whenever b is empty and a is not.
func CanCardsMerge(a, b int) bool {
	return destTable[key(a, b)] != b
}

// EmptyCellCount returns the number of cells holding index 0.
func (b Board) EmptyCellCount() int {
	count := 0
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if b.Get(x, y) == 0 {
				count++
			}
		}
	}
	return count
}

// PackedFromLogical packs a 4x4 arrangement of face values (indexed
// row-major, logical[y*4+x]) into a Board. It panics on an unreachable
// face value, which is a programmer error: callers are expected to hand
// in values that came from this same card ladder.
func PackedFromLogical(logical [16]int) Board {
	var b Board
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			idx, ok := cardtable.IndexForValue(logical[y*4+x])
			if !ok {
				panic("board: face value is not a legal Threes card value")
			}
			b = b.Set(x, y, idx)
		}
	}
	return b
}

// Logical unpacks a Board into a 4x4 arrangement of face values, indexed
// row-major (logical[y*4+x]).
func (b Board) Logical() [16]int {
	var out [16]int
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			out[y*4+x] = cardtable.Value(b.Get(x, y))
		}
	}
	return out
}

// Shift applies the line-level shift-merge rule in the given direction
// and returns the resulting board together with the
// trailing-edge placement cells for a new card. If the shift changes no
// bits, the returned board equals b (callers detect "did not move" via
// equality) and every placement entry is Sentinel.
func Shift(b Board, dir Direction) (Board, Placements) {
	lines := directionLines(dir)
	out := b
	var placements Placements
	moved := false

	for li := 0; li < 4; li++ {
		line := lines[li]
		var vals [4]int
		for i, c := range line {
			vals[i] = b.Get(int(c.X), int(c.Y))
		}
		orig := vals

		for i := 0; i < 3; i++ {
			s := vals[i+1]
			d := vals[i]
			k := key(s, d)
			vals[i] = destTable[k]
			vals[i+1] = srcTable[k]
		}

		if vals != orig {
			moved = true
			for i, c := range line {
				out = out.Set(int(c.X), int(c.Y), vals[i])
			}
			placements[li] = line[3]
		} else {
			placements[li] = Sentinel
		}
	}

	if !moved {
		return b, Placements{Sentinel, Sentinel, Sentinel, Sentinel}
	}
	return out, placements
}

// directionLines returns, for each of the four lines along the shift
// axis, the four cells of that line ordered from nearest the shift edge
// to farthest.
func directionLines(dir Direction) [4][4]Cell {
	var lines [4][4]Cell
	switch dir {
	case Left:
		for row := 0; row < 4; row++ {
			for i := 0; i < 4; i++ {
				lines[row][i] = Cell{X: int8(i), Y: int8(row)}
			}
		}
	case Right:
		for row := 0; row < 4; row++ {
			for i := 0; i < 4; i++ {
				lines[row][i] = Cell{X: int8(3 - i), Y: int8(row)}
			}
		}
	case Up:
		for col := 0; col < 4; col++ {
			for i := 0; i < 4; i++ {
				lines[col][i] = Cell{X: int8(col), Y: int8(i)}
			}
		}
	case Down:
		for col := 0; col < 4; col++ {
			for i := 0; i < 4; i++ {
				lines[col][i] = Cell{X: int8(col), Y: int8(3 - i)}
			}
		}
	}
	return lines
}
