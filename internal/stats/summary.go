// Package stats keeps per-player, per-configuration game statistics and
// writes them off the game's goroutine.
package stats

import (
	"cmp"
	"slices"
	"time"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// Summary aggregates finished games of one player on one configuration.
type Summary struct {
	Player      string
	Params      mines.Params
	Wins        int
	Losses      int
	Resets      int // games abandoned while running
	WinLengths  []time.Duration
	LossLengths []time.Duration
}

func (s *Summary) Add(e mines.Event) {
	switch e.Kind {
	case mines.EventWon:
		s.Wins++
		s.WinLengths = append(s.WinLengths, e.Elapsed)
	case mines.EventLost:
		s.Losses++
		s.LossLengths = append(s.LossLengths, e.Elapsed)
	case mines.EventAborted:
		s.Resets++
	}
}

func (s Summary) Played() int {
	return s.Wins + s.Losses + s.Resets
}

// Best is the fastest win, if any.
func (s Summary) Best() (time.Duration, bool) {
	if len(s.WinLengths) == 0 {
		return 0, false
	}
	return slices.Min(s.WinLengths), true
}

// Highscore is a single won game.
type Highscore struct {
	Player  string
	Params  mines.Params
	Elapsed time.Duration
}

func sortHighscores(h []Highscore, limit int) []Highscore {
	slices.SortStableFunc(h, func(a, b Highscore) int {
		return cmp.Compare(a.Elapsed, b.Elapsed)
	})
	if limit > 0 && len(h) > limit {
		h = h[:limit]
	}
	return h
}
