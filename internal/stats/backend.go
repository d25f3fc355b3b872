package stats

import (
	"context"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// Backend persists game events and answers summary queries.
type Backend interface {
	Save(ctx context.Context, player string, e mines.Event) error
	Summary(ctx context.Context, player string, params mines.Params) (Summary, error)
	// Highscores lists won games fastest first. A nil params matches every
	// configuration; a non-positive limit returns everything.
	Highscores(ctx context.Context, params *mines.Params, limit int) ([]Highscore, error)
}
