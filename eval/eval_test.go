package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/domino14/threesbot/board"
)

func rowsBoard(rows ...[4]int) board.Board {
	var logical [16]int
	for y, row := range rows {
		for x, v := range row {
			logical[y*4+x] = v
		}
	}
	return board.PackedFromLogical(logical)
}

func TestZeroAlwaysZero(t *testing.T) {
	assert.EqualValues(t, 0, Zero{}.Evaluate(rowsBoard([4]int{1, 2, 3, 6})))
}

func TestEmptySpacesAllEmptyAndFull(t *testing.T) {
	var empty board.Board
	assert.EqualValues(t, 16, EmptySpacesEvaluator{}.Evaluate(empty))

	full := rowsBoard(
		[4]int{1, 2, 1, 2},
		[4]int{1, 2, 1, 2},
		[4]int{1, 2, 1, 2},
		[4]int{1, 2, 1, 2},
	)
	assert.EqualValues(t, 0, EmptySpacesEvaluator{}.Evaluate(full))
}

func TestTotalScoreMatchesBoard(t *testing.T) {
	b := rowsBoard([4]int{3, 6, 12, 0})
	assert.EqualValues(t, b.TotalScore(), TotalScoreEvaluator{}.Evaluate(b))
}

func TestEvaluatorsArePure(t *testing.T) {
	b := rowsBoard([4]int{1, 2, 0, 3}, [4]int{6, 0, 0, 0})
	evaluators := []Evaluator{
		Zero{}, TotalScoreEvaluator{}, EmptySpacesEvaluator{},
		OpennessEvaluator{}, OpennessMatthewEvaluator{},
	}
	for _, e := range evaluators {
		first := e.Evaluate(b)
		second := e.Evaluate(b)
		assert.Equal(t, first, second, "%s must be pure", e.Name())
	}
}

func TestOpennessRewardsEmptyCells(t *testing.T) {
	var empty board.Board
	full := rowsBoard(
		[4]int{1, 3, 1, 3},
		[4]int{3, 1, 3, 1},
		[4]int{1, 3, 1, 3},
		[4]int{3, 1, 3, 1},
	)
	assert.Greater(t, OpennessEvaluator{}.Evaluate(empty), OpennessEvaluator{}.Evaluate(full))
}

func TestOpennessMatthewRewardsEdgeHuggingMax(t *testing.T) {
	cornered := rowsBoard([4]int{24, 0, 0, 0})
	centered := rowsBoard(
		[4]int{0, 0, 0, 0},
		[4]int{0, 24, 0, 0},
		[4]int{0, 0, 0, 0},
		[4]int{0, 0, 0, 0},
	)
	assert.Greater(t,
		OpennessMatthewEvaluator{}.Evaluate(cornered),
		OpennessMatthewEvaluator{}.Evaluate(centered))
}
