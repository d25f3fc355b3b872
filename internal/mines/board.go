package mines

import (
	"fmt"
	"math/rand/v2"
)

// Board owns the cells of a single game. Cells are stored row-major.
type Board struct {
	params    Params
	mineCount int
	cells     []Cell
	revealed  int // revealed safe cells
	flagged   int
	rnd       *rand.Rand
}

func newBoard(rows, cols int, r *rand.Rand) *Board {
	if r == nil {
		r = newRand()
	}
	return &Board{
		params: Params{Rows: rows, Cols: cols},
		cells:  make([]Cell, rows*cols),
		rnd:    r,
	}
}

// NewBoard builds a board for params with mines placed uniformly at random.
func NewBoard(params Params, r *rand.Rand) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	b := newBoard(params.Rows, params.Cols, r)
	b.params = params
	b.placeMines(params.MineCount())
	b.recomputeNeighborCounts()
	return b, nil
}

// NewBoardWithMines builds a board with mines at exactly the given points.
// At least one cell must remain safe.
func NewBoardWithMines(rows, cols int, mines []Point, r *rand.Rand) (*Board, error) {
	if rows < 1 || cols < 1 || rows > MaxCells/cols {
		return nil, fmt.Errorf(
			"%w: board must be between 1x1 and %d cells (rows = %d, cols = %d)",
			ErrInvalidConfiguration, MaxCells, rows, cols,
		)
	}
	b := newBoard(rows, cols, r)
	for _, p := range mines {
		if !b.InBounds(p.Row, p.Col) {
			return nil, fmt.Errorf("%w: mine at %d:%d", ErrOutOfBounds, p.Row, p.Col)
		}
		c := &b.cells[b.index(p.Row, p.Col)]
		if c.Mine {
			return nil, fmt.Errorf("%w: duplicate mine at %d:%d", ErrInvalidConfiguration, p.Row, p.Col)
		}
		c.Mine = true
		b.mineCount++
	}
	if b.mineCount > len(b.cells)-1 {
		return nil, fmt.Errorf("%w: no safe cell left", ErrInvalidConfiguration)
	}
	b.params.Density = float64(b.mineCount) / float64(len(b.cells))
	b.recomputeNeighborCounts()
	return b, nil
}

func (b *Board) placeMines(n int) {
	for b.mineCount < n {
		c := &b.cells[b.rnd.IntN(len(b.cells))]
		if !c.Mine {
			c.Mine = true
			b.mineCount++
		}
	}
}

// recomputeNeighborCounts must run after every change to mine placement.
func (b *Board) recomputeNeighborCounts() {
	for i := range b.cells {
		row, col := b.coords(i)
		n := 0
		b.around(row, col, func(j int) {
			if b.cells[j].Mine {
				n++
			}
		})
		b.cells[i].Count = n
	}
}

func (b *Board) index(row, col int) int {
	return row*b.params.Cols + col
}

func (b *Board) coords(i int) (row, col int) {
	return i / b.params.Cols, i % b.params.Cols
}

// around calls fn with the index of every in-bounds neighbor of row:col.
func (b *Board) around(row, col int, fn func(i int)) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if r, c := row+dr, col+dc; b.InBounds(r, c) {
				fn(b.index(r, c))
			}
		}
	}
}

func (b *Board) InBounds(row, col int) bool {
	return b.params.InBounds(row, col)
}

func (b *Board) Params() Params { return b.params }
func (b *Board) Rows() int { return b.params.Rows }
func (b *Board) Cols() int { return b.params.Cols }
func (b *Board) MineCount() int { return b.mineCount }
func (b *Board) RevealedCount() int { return b.revealed }
func (b *Board) FlagCount() int { return b.flagged }

// Cell returns a copy of the cell at row:col.
func (b *Board) Cell(row, col int) (Cell, error) {
	if !b.InBounds(row, col) {
		return Cell{}, ErrOutOfBounds
	}
	return b.cells[b.index(row, col)], nil
}

// ToggleMark advances the mark of a covered cell and reports the new mark.
// Revealed cells are left alone and changed is false.
func (b *Board) ToggleMark(row, col int) (mark Mark, changed bool, err error) {
	if !b.InBounds(row, col) {
		return Unmarked, false, ErrOutOfBounds
	}
	c := &b.cells[b.index(row, col)]
	if c.Revealed {
		return c.Mark, false, nil
	}
	if c.Mark == Flagged {
		b.flagged--
	}
	c.Mark = c.Mark.next()
	if c.Mark == Flagged {
		b.flagged++
	}
	return c.Mark, true, nil
}

// flag marks a covered cell as flagged regardless of its current mark.
func (b *Board) flag(i int) {
	c := &b.cells[i]
	if c.Revealed || c.Mark == Flagged {
		return
	}
	c.Mark = Flagged
	b.flagged++
}

// RelocateMine moves the mine at row:col to a random covered, unmined cell
// elsewhere on the board.
func (b *Board) RelocateMine(row, col int) error {
	if !b.InBounds(row, col) {
		return ErrOutOfBounds
	}
	i := b.index(row, col)
	if !b.cells[i].Mine {
		return AssertionError{fmt.Sprintf("no mine to relocate at %d:%d", row, col)}
	}
	candidates := make([]int, 0, len(b.cells)-b.mineCount)
	for j, c := range b.cells {
		if j != i && !c.Mine && !c.Revealed {
			candidates = append(candidates, j)
		}
	}
	if len(candidates) == 0 {
		return AssertionError{"no cell left to relocate a mine to"}
	}
	b.cells[i].Mine = false
	b.cells[candidates[b.rnd.IntN(len(candidates))]].Mine = true
	b.recomputeNeighborCounts()
	return nil
}

// Solved reports whether every safe cell has been revealed. Flags do not
// matter.
func (b *Board) Solved() bool {
	return b.revealed == len(b.cells)-b.mineCount
}
