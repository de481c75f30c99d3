// Package eval holds Threes' board-quality heuristics: pure, stateless
// functions from a packed board to a quality score, consulted by the
// search package at every leaf. Several concrete, swappable evaluators
// implement the same small interface and are selected by name in the
// config package.
package eval

import "github.com/domino14/threesbot/board"

// Evaluator is a capability: a pure, thread-safe function from a board
// to a quality score. Any type implementing this interface can be
// plugged into the search.
type Evaluator interface {
	Evaluate(b board.Board) float32
	Name() string
}

// Zero always returns 0. It exists as a baseline for tests and as a
// placeholder evaluator when quality doesn't matter (e.g. legality-only
// searches).
type Zero struct{}

func (Zero) Evaluate(board.Board) float32 { return 0 }
func (Zero) Name() string                 { return "Zero" }

// TotalScoreEvaluator returns the board's total end-of-game score.
type TotalScoreEvaluator struct{}

func (TotalScoreEvaluator) Evaluate(b board.Board) float32 { return float32(b.TotalScore()) }
func (TotalScoreEvaluator) Name() string                   { return "TotalScore" }

// EmptySpacesEvaluator returns the count of empty cells.
type EmptySpacesEvaluator struct{}

func (EmptySpacesEvaluator) Evaluate(b board.Board) float32 { return float32(b.EmptyCellCount()) }
func (EmptySpacesEvaluator) Name() string                   { return "EmptySpaces" }

var neighborOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

func neighbors(x, y int) [][2]int {
	var out [][2]int
	for _, off := range neighborOffsets {
		nx, ny := x+off[0], y+off[1]
		if nx >= 0 && nx < 4 && ny >= 0 && ny < 4 {
			out = append(out, [2]int{nx, ny})
		}
	}
	return out
}

// trappedAxis reports whether the cell at (x,y) is trapped along one
// axis: both ends of the axis are either the board edge or a strictly
// larger, non-mergeable neighbor.
func trappedAxis(b board.Board, x, y, dx, dy, value int) bool {
	blocked := func(nx, ny int) bool {
		if nx < 0 || nx >= 4 || ny < 0 || ny >= 4 {
			return true // wall
		}
		n := b.Get(nx, ny)
		if board.CanCardsMerge(value, n) {
			return false
		}
		return n >= 3 && n > value
	}
	return blocked(x-dx, y-dy) && blocked(x+dx, y+dy)
}

// OpennessEvaluator rewards empty space, mergeable neighbors, and
// ladder progress, and penalizes cells trapped against the board edge
// or against larger, non-mergeable neighbors.
type OpennessEvaluator struct{}

func (OpennessEvaluator) Name() string { return "Openness" }

func (OpennessEvaluator) Evaluate(b board.Board) float32 {
	var total float32
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			v := b.Get(x, y)
			if v == 0 {
				total += 2
				continue
			}
			for _, n := range neighbors(x, y) {
				nv := b.Get(n[0], n[1])
				if nv != 0 && board.CanCardsMerge(v, nv) {
					total++
				}
			}
			if trappedAxis(b, x, y, 1, 0, v) {
				total--
			}
			if trappedAxis(b, x, y, 0, 1, v) {
				total--
			}
			if v >= 3 {
				for _, n := range neighbors(x, y) {
					if b.Get(n[0], n[1]) == v+1 {
						total++
						break
					}
				}
			}
		}
	}
	return total
}

// MatthewWeights holds the tunable multipliers for OpennessMatthewEvaluator.
// The zero value is never used directly - OpennessMatthewEvaluator falls
// back to DefaultMatthewWeights() whenever Weights is its zero value - so
// that the plain literal OpennessMatthewEvaluator{} (no constructor) keeps
// working out of the box. A config file can override these (see the
// config package) without a rebuild.
type MatthewWeights struct {
	Empty           float32 `yaml:"empty"`
	Mergeable       float32 `yaml:"mergeable"`
	Trapped         float32 `yaml:"trapped"`
	NextUp          float32 `yaml:"next_up"`
	MaxEdge         float32 `yaml:"max_edge"`
	NearMaxNeighbor float32 `yaml:"near_max_neighbor"`
	NearMaxEdge     float32 `yaml:"near_max_edge"`
	ThirdMaxChain   float32 `yaml:"third_max_chain"`
}

// DefaultMatthewWeights returns OpennessMatthewEvaluator's out-of-the-box multipliers.
func DefaultMatthewWeights() MatthewWeights {
	return MatthewWeights{
		Empty: 3, Mergeable: 2, Trapped: 5, NextUp: 2,
		MaxEdge: 3, NearMaxNeighbor: 1, NearMaxEdge: 1, ThirdMaxChain: 1,
	}
}

func (w MatthewWeights) orDefault() MatthewWeights {
	if w == (MatthewWeights{}) {
		return DefaultMatthewWeights()
	}
	return w
}

// OpennessMatthewEvaluator is Openness's stronger variant: the same
// structure with larger multipliers, plus edge-hugging bonuses for the
// board's current maximum card (and its two immediate predecessors)
// once the game has grown past the starter cards.
type OpennessMatthewEvaluator struct {
	Weights MatthewWeights
}

// NewOpennessMatthewEvaluator builds an evaluator with explicit weights,
// e.g. ones loaded from a config file.
func NewOpennessMatthewEvaluator(w MatthewWeights) OpennessMatthewEvaluator {
	return OpennessMatthewEvaluator{Weights: w}
}

func (OpennessMatthewEvaluator) Name() string { return "OpennessMatthew" }

func (e OpennessMatthewEvaluator) Evaluate(b board.Board) float32 {
	w := e.Weights.orDefault()
	var total float32
	maxIdx := b.MaxCardIndex()

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			v := b.Get(x, y)
			if v == 0 {
				total += w.Empty
				continue
			}
			for _, n := range neighbors(x, y) {
				nv := b.Get(n[0], n[1])
				if nv != 0 && board.CanCardsMerge(v, nv) {
					total += w.Mergeable
				}
			}
			if trappedAxis(b, x, y, 1, 0, v) {
				total -= w.Trapped
			}
			if trappedAxis(b, x, y, 0, 1, v) {
				total -= w.Trapped
			}
			if v >= 3 {
				for _, n := range neighbors(x, y) {
					if b.Get(n[0], n[1]) == v+1 {
						total += w.NextUp
						break
					}
				}
			}

			if maxIdx > 4 {
				total += maxCardBonus(b, x, y, v, maxIdx, w)
			}
		}
	}
	return total
}

func edgesTouched(x, y int) int {
	n := 0
	if x == 0 || x == 3 {
		n++
	}
	if y == 0 || y == 3 {
		n++
	}
	return n
}

func maxCardBonus(b board.Board, x, y, v, maxIdx int, w MatthewWeights) float32 {
	var bonus float32
	switch v {
	case maxIdx:
		bonus += w.MaxEdge * float32(edgesTouched(x, y))
	case maxIdx - 1:
		hasMax := false
		for _, n := range neighbors(x, y) {
			if b.Get(n[0], n[1]) == maxIdx {
				hasMax = true
				break
			}
		}
		if hasMax {
			bonus += w.NearMaxNeighbor
			bonus += w.NearMaxEdge * float32(edgesTouched(x, y))
		}
	case maxIdx - 2:
		for _, n := range neighbors(x, y) {
			if b.Get(n[0], n[1]) != maxIdx-1 {
				continue
			}
			for _, n2 := range neighbors(n[0], n[1]) {
				if b.Get(n2[0], n2[1]) == maxIdx {
					bonus += w.ThirdMaxChain
					return bonus
				}
			}
		}
	}
	return bonus
}
