package mines

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func countMines(b *Board) (n int) {
	for _, c := range b.cells {
		if c.Mine {
			n++
		}
	}
	return
}

func cornerBoard(t *testing.T) *Board {
	t.Helper()
	b, err := NewBoardWithMines(4, 4, []Point{{0, 0}, {3, 3}}, testRand())
	require.NoError(t, err)
	return b
}

func TestNewBoardPlacesMines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params Params
	}{
		{name: "9x9@0.12", params: Params{Rows: 9, Cols: 9, Density: 0.12}},
		{name: "16x16@0.16", params: Params{Rows: 16, Cols: 16, Density: 0.16}},
		{name: "16x30@0.2", params: Params{Rows: 16, Cols: 30, Density: 0.2}},
		{name: "3x3@0.95", params: Params{Rows: 3, Cols: 3, Density: 0.95}},
		{name: "1x1@0.9", params: Params{Rows: 1, Cols: 1, Density: 0.9}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			b, err := NewBoard(test.params, testRand())
			require.NoError(t, err)
			assert.Equal(t, test.params.MineCount(), b.MineCount())
			assert.Equal(t, b.MineCount(), countMines(b))
			assert.LessOrEqual(t, b.MineCount(), test.params.Size()-1)
			assert.Zero(t, b.RevealedCount())
			for _, c := range b.cells {
				assert.False(t, c.Revealed)
				assert.Equal(t, Unmarked, c.Mark)
			}
		})
	}
}

func TestNewBoardRejectsInvalidConfiguration(t *testing.T) {
	_, err := NewBoard(Params{Rows: 1, Cols: 1, Density: 1}, testRand())
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = NewBoard(Params{Rows: 0, Cols: 4, Density: 0.1}, testRand())
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = NewBoardWithMines(1, 1, []Point{{0, 0}}, testRand())
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = NewBoardWithMines(2, 2, []Point{{0, 0}, {0, 0}}, testRand())
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = NewBoardWithMines(2, 2, []Point{{2, 0}}, testRand())
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestNeighborCounts(t *testing.T) {
	b := cornerBoard(t)
	want := [][]int{
		{0, 1, 0, 0},
		{1, 1, 0, 0},
		{0, 0, 1, 1},
		{0, 0, 1, 0},
	}
	for row := range 4 {
		for col := range 4 {
			c, err := b.Cell(row, col)
			require.NoError(t, err)
			assert.Equal(t, want[row][col], c.Count, "count at %d:%d", row, col)
		}
	}
}

func TestRevealCascadesThroughZeroRegion(t *testing.T) {
	b := cornerBoard(t)

	res, err := b.Reveal(0, 3)
	require.NoError(t, err)
	require.Equal(t, Opened, res.Kind)

	got := make(map[Point]int)
	for _, c := range res.Cells {
		_, dup := got[c.Point]
		require.False(t, dup, "cell %v revealed twice", c.Point)
		got[c.Point] = c.Count
	}
	want := map[Point]int{
		{0, 1}: 1, {0, 2}: 0, {0, 3}: 0,
		{1, 0}: 1, {1, 1}: 1, {1, 2}: 0, {1, 3}: 0,
		{2, 0}: 0, {2, 1}: 0, {2, 2}: 1, {2, 3}: 1,
		{3, 0}: 0, {3, 1}: 0, {3, 2}: 1,
	}
	assert.Equal(t, want, got)
	assert.Equal(t, Point{0, 3}, res.Cells[0].Point)
	assert.Equal(t, 14, b.RevealedCount())
	assert.True(t, b.Solved())
}

func TestRevealNextToMineDoesNotCascade(t *testing.T) {
	b := cornerBoard(t)

	res, err := b.Reveal(2, 2)
	require.NoError(t, err)
	assert.Equal(t, Opened, res.Kind)
	assert.Equal(t, []Revealed{{Point{2, 2}, 1}}, res.Cells)
	assert.Equal(t, 1, b.RevealedCount())

	b, err = NewBoardWithMines(3, 3, []Point{{0, 0}, {0, 2}}, testRand())
	require.NoError(t, err)
	res, err = b.Reveal(1, 1)
	require.NoError(t, err)
	assert.Equal(t, []Revealed{{Point{1, 1}, 2}}, res.Cells)
	assert.Equal(t, 1, b.RevealedCount())
	assert.False(t, b.Solved())
}

func TestRevealSkipsFlaggedCells(t *testing.T) {
	b := cornerBoard(t)
	mark, changed, err := b.ToggleMark(3, 0)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, Flagged, mark)

	res, err := b.Reveal(0, 3)
	require.NoError(t, err)
	assert.Len(t, res.Cells, 13)
	for _, c := range res.Cells {
		assert.NotEqual(t, Point{3, 0}, c.Point)
	}

	c, err := b.Cell(3, 0)
	require.NoError(t, err)
	assert.False(t, c.Revealed)
	assert.Equal(t, Flagged, c.Mark)
	assert.False(t, b.Solved())
}

func TestRevealOpensQuestionedCells(t *testing.T) {
	b := cornerBoard(t)
	for range 2 {
		_, _, err := b.ToggleMark(3, 0)
		require.NoError(t, err)
	}

	_, err := b.Reveal(0, 3)
	require.NoError(t, err)
	c, err := b.Cell(3, 0)
	require.NoError(t, err)
	assert.True(t, c.Revealed)
	assert.Equal(t, Unmarked, c.Mark)
	assert.True(t, b.Solved())
}

func TestRevealLargeEmptyBoard(t *testing.T) {
	b, err := NewBoardWithMines(300, 300, nil, testRand())
	require.NoError(t, err)

	res, err := b.Reveal(150, 150)
	require.NoError(t, err)
	assert.Len(t, res.Cells, 300*300)
	assert.True(t, b.Solved())
}

func TestRevealNoops(t *testing.T) {
	b := cornerBoard(t)

	res, err := b.Reveal(0, 0)
	require.NoError(t, err)
	assert.Equal(t, HitMine, res.Kind)
	c, _ := b.Cell(0, 0)
	assert.False(t, c.Revealed)

	_, err = b.Reveal(4, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = b.Reveal(0, -1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Zero(t, b.RevealedCount())

	_, err = b.Reveal(2, 2)
	require.NoError(t, err)
	res, err = b.Reveal(2, 2)
	require.NoError(t, err)
	assert.Equal(t, AlreadyRevealed, res.Kind)
	assert.Empty(t, res.Cells)
	assert.Equal(t, 1, b.RevealedCount())
}

func TestToggleMarkCycle(t *testing.T) {
	b := cornerBoard(t)

	want := []Mark{Flagged, Questioned, Unmarked}
	for _, w := range want {
		mark, changed, err := b.ToggleMark(1, 1)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, w, mark)
	}
	assert.Zero(t, b.FlagCount())

	_, _, err := b.ToggleMark(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, b.FlagCount())

	res, err := b.Reveal(1, 1)
	require.NoError(t, err)
	assert.Equal(t, AlreadyRevealed, res.Kind)

	_, _, err = b.ToggleMark(-1, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestToggleMarkOnRevealedCell(t *testing.T) {
	b := cornerBoard(t)
	_, err := b.Reveal(2, 2)
	require.NoError(t, err)

	mark, changed, err := b.ToggleMark(2, 2)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, Unmarked, mark)
	assert.Zero(t, b.FlagCount())
}

func TestRelocateMine(t *testing.T) {
	b, err := NewBoardWithMines(2, 2, []Point{{0, 0}, {0, 1}, {1, 0}}, testRand())
	require.NoError(t, err)

	require.NoError(t, b.RelocateMine(0, 0))
	assert.Equal(t, 3, b.MineCount())
	assert.Equal(t, 3, countMines(b))

	c, _ := b.Cell(0, 0)
	assert.False(t, c.Mine)
	assert.Equal(t, 3, c.Count)
	c, _ = b.Cell(1, 1)
	assert.True(t, c.Mine)

	var ae AssertionError
	assert.ErrorAs(t, b.RelocateMine(0, 0), &ae)
	assert.ErrorIs(t, b.RelocateMine(2, 2), ErrOutOfBounds)
}

func TestRelocateMineSkipsRevealedCells(t *testing.T) {
	b, err := NewBoardWithMines(1, 4, []Point{{0, 1}}, testRand())
	require.NoError(t, err)
	_, err = b.Reveal(0, 3)
	require.NoError(t, err)
	require.Equal(t, 2, b.RevealedCount())

	require.NoError(t, b.RelocateMine(0, 1))
	c, _ := b.Cell(0, 0)
	assert.True(t, c.Mine)
	assert.Equal(t, 1, countMines(b))

	c, _ = b.Cell(0, 1)
	assert.Equal(t, 1, c.Count)
	c, _ = b.Cell(0, 2)
	assert.Equal(t, 0, c.Count)
}

func TestRelocateMineWithoutCandidate(t *testing.T) {
	b, err := NewBoardWithMines(1, 2, []Point{{0, 0}}, testRand())
	require.NoError(t, err)
	_, err = b.Reveal(0, 1)
	require.NoError(t, err)

	var ae AssertionError
	assert.ErrorAs(t, b.RelocateMine(0, 0), &ae)
	c, _ := b.Cell(0, 0)
	assert.True(t, c.Mine)
}
