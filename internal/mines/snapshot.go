package mines

import (
	"slices"
	"time"
)

type Face int8

const (
	FaceSmile Face = iota
	FaceWon
	FaceDead
)

// Snapshot is a read-only copy of everything a presentation layer needs.
type Snapshot struct {
	State     State
	Face      Face
	Rows      int
	Cols      int
	MineCount int
	Remaining int
	Elapsed   time.Duration
	Clicks    int
	Cells     []Cell // row-major
	Grid      Grid
}

// Snapshot copies the current game. With showMines set, covered mines are
// shown without affecting the game.
func (g *Game) Snapshot(showMines bool) Snapshot {
	b := g.board
	s := Snapshot{
		State:     g.state,
		Rows:      b.Rows(),
		Cols:      b.Cols(),
		MineCount: b.MineCount(),
		Remaining: g.Remaining(),
		Elapsed:   g.Elapsed(),
		Clicks:    g.clicks,
		Cells:     slices.Clone(b.cells),
		Grid:      make(Grid, len(b.cells)),
	}
	switch g.state {
	case Won:
		s.Face = FaceWon
	case Lost:
		s.Face = FaceDead
	}
	for i := range b.cells {
		s.Grid[i] = b.stateAt(i, g.state == Lost, g.exploded, showMines)
	}
	return s
}

// At returns the cell at row:col. Coordinates must be in bounds.
func (s Snapshot) At(row, col int) Cell {
	return s.Cells[row*s.Cols+col]
}

func (s Snapshot) String() string {
	return s.Grid.ToString(s.Cols)
}
