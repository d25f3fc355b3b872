package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// CellState is what a presentation layer should draw for a cell.
type CellState int8

const (
	Question      CellState = -3
	Unknown       CellState = -2
	Flag          CellState = -1
	ExplodedMine  CellState = 65 // post-game-over
	WrongFlag     CellState = 66
	UnflaggedMine CellState = 67
	// 0-8 for an opened cell with the given number of mined neighbors
)

var glyphs = map[CellState]string{
	Question:      "?",
	Unknown:       "#",
	Flag:          "F",
	0:             ".",
	ExplodedMine:  "X",
	WrongFlag:     "%",
	UnflaggedMine: "*",
}

func (s CellState) String() string {
	if g, ok := glyphs[s]; ok {
		return g
	}
	if 1 <= s && s <= 8 {
		return strconv.Itoa(int(s))
	}
	return "!"
}

// Opened reports whether s is a revealed safe cell.
func (s CellState) Opened() bool {
	return 0 <= s && s <= 8
}

func markState(m Mark) CellState {
	switch m {
	case Flagged:
		return Flag
	case Questioned:
		return Question
	default:
		return Unknown
	}
}

// stateAt classifies cell i for display. After a loss mines and wrong flags
// are exposed; correct flags stay as they are.
func (b *Board) stateAt(i int, lost bool, exploded int, showMines bool) CellState {
	c := b.cells[i]
	switch {
	case c.Revealed:
		return CellState(c.Count)
	case lost && c.Mine && c.Mark != Flagged:
		if i == exploded {
			return ExplodedMine
		}
		return UnflaggedMine
	case lost && !c.Mine && c.Mark == Flagged:
		return WrongFlag
	case showMines && c.Mine && c.Mark != Flagged:
		return UnflaggedMine
	default:
		return markState(c.Mark)
	}
}

type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			fmt.Fprint(&b, g[y*width+x].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
