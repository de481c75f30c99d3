package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logicalFromRows(rows ...[4]int) [16]int {
	var out [16]int
	for y, row := range rows {
		for x, v := range row {
			out[y*4+x] = v
		}
	}
	return out
}

func TestGetSetRoundTrip(t *testing.T) {
	var b Board
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			b = b.Set(x, y, (x+y)%16)
		}
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			require.Equal(t, (x+y)%16, b.Get(x, y))
		}
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	logical := logicalFromRows(
		[4]int{1, 2, 3, 6},
		[4]int{0, 12, 24, 0},
		[4]int{3, 3, 1, 2},
		[4]int{0, 0, 0, 48},
	)
	b := PackedFromLogical(logical)
	assert.Equal(t, logical, b.Logical())
}

func TestMergeOneAndTwo(t *testing.T) {
	b := PackedFromLogical(logicalFromRows([4]int{1, 2, 0, 0}))
	out, placements := Shift(b, Left)
	want := logicalFromRows([4]int{3, 0, 0, 0})
	assert.Equal(t, want, out.Logical())
	assert.Equal(t, Placements{{3, 0}, Sentinel, Sentinel, Sentinel}, placements)
}

func TestMergeEqualSixes(t *testing.T) {
	b := PackedFromLogical(logicalFromRows([4]int{6, 6, 0, 0}))
	out, placements := Shift(b, Left)
	want := logicalFromRows([4]int{12, 0, 0, 0})
	assert.Equal(t, want, out.Logical())
	assert.Equal(t, Placements{{3, 0}, Sentinel, Sentinel, Sentinel}, placements)
}

func TestNoMergeOneAndThree(t *testing.T) {
	b := PackedFromLogical(logicalFromRows([4]int{1, 3, 0, 0}))
	out, _ := Shift(b, Left)
	assert.Equal(t, b, out, "1 and 3 must not merge, and the line must not slide")
}

func TestOneMergePerLine(t *testing.T) {
	b := PackedFromLogical(logicalFromRows([4]int{1, 2, 1, 2}))
	out, _ := Shift(b, Left)
	want := logicalFromRows([4]int{3, 1, 2, 0})
	assert.Equal(t, want, out.Logical())
}

func TestGameOverBoardHasNoLegalMove(t *testing.T) {
	b := PackedFromLogical(logicalFromRows(
		[4]int{1, 3, 1, 3},
		[4]int{3, 1, 3, 1},
		[4]int{1, 3, 1, 3},
		[4]int{3, 1, 3, 1},
	))
	for _, d := range Directions {
		out, _ := Shift(b, d)
		assert.Equal(t, b, out, "direction %v should not move on a fully trapped board", d)
	}
}

func TestShiftIsPureAndDeterministic(t *testing.T) {
	b := PackedFromLogical(logicalFromRows([4]int{1, 2, 3, 6}, [4]int{6, 0, 0, 0}))
	out1, p1 := Shift(b, Down)
	out2, p2 := Shift(b, Down)
	assert.Equal(t, out1, out2)
	assert.Equal(t, p1, p2)
}

func TestShiftIdempotentOnNonMovingDirection(t *testing.T) {
	b := PackedFromLogical(logicalFromRows([4]int{1, 3, 1, 3}))
	out, _ := Shift(b, Left)
	require.Equal(t, b, out)
	out2, _ := Shift(out, Left)
	assert.Equal(t, out, out2)
}

func TestShiftNeverCreatesCards(t *testing.T) {
	b := PackedFromLogical(logicalFromRows(
		[4]int{1, 2, 0, 3},
		[4]int{0, 6, 0, 0},
		[4]int{2, 0, 1, 0},
		[4]int{0, 0, 0, 12},
	))
	before := 16 - b.EmptyCellCount()
	for _, d := range Directions {
		out, _ := Shift(b, d)
		after := 16 - out.EmptyCellCount()
		assert.LessOrEqual(t, after, before)
	}
}

func TestScoreMonotonicityAfterShift(t *testing.T) {
	b := PackedFromLogical(logicalFromRows([4]int{6, 6, 12, 12}, [4]int{24, 0, 0, 0}))
	before := b.TotalScore()
	out, _ := Shift(b, Left)
	assert.GreaterOrEqual(t, out.TotalScore(), before)
}

func TestCanCardsMerge(t *testing.T) {
	assert.True(t, CanCardsMerge(1, 2))
	assert.True(t, CanCardsMerge(2, 1))
	assert.True(t, CanCardsMerge(3, 3))
	assert.False(t, CanCardsMerge(1, 3))
	assert.False(t, CanCardsMerge(2, 3))
}

func TestMergePairTabulation(t *testing.T) {
	for s := 0; s < 16; s++ {
		for d := 0; d < 16; d++ {
			gotD := destTable[key(s, d)]
			gotS := srcTable[key(s, d)]

			var wantD, wantS int
			switch {
			case d == 0 && s != 0:
				wantD, wantS = s, 0
			case s == 0:
				wantD, wantS = d, 0
			case (s == 1 && d == 2) || (s == 2 && d == 1):
				wantD, wantS = 3, 0
			case s == d && s >= 3:
				wantD, wantS = s+1, 0
			default:
				wantD, wantS = d, s
			}
			require.Equalf(t, wantD, gotD, "dest mismatch for s=%d d=%d", s, d)
			require.Equalf(t, wantS, gotS, "src mismatch for s=%d d=%d", s, d)
		}
	}
}

func BenchmarkShift(b *testing.B) {
	bd := PackedFromLogical(logicalFromRows(
		[4]int{1, 2, 3, 6},
		[4]int{6, 0, 0, 0},
		[4]int{2, 0, 1, 0},
		[4]int{0, 0, 0, 12},
	))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Shift(bd, Left)
	}
}
