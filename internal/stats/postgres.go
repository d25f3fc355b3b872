package stats

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

// PostgresBackend stores every finished game as a row and aggregates on
// read.
type PostgresBackend struct {
	q *repository.Queries

	mu      sync.Mutex
	players map[string]int64
}

func NewPostgresBackend(db repository.DBTX) *PostgresBackend {
	return &PostgresBackend{
		q:       repository.New(db),
		players: make(map[string]int64),
	}
}

func (b *PostgresBackend) playerId(ctx context.Context, name string) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if id, ok := b.players[name]; ok {
		return id, nil
	}
	player, err := b.q.EnsurePlayer(ctx, name)
	if err != nil {
		return 0, err
	}
	Log.WithFields(logrus.Fields{
		"player":    name,
		"player_id": player.PlayerId,
	}).Debug("player resolved")
	b.players[name] = player.PlayerId
	return player.PlayerId, nil
}

func (b *PostgresBackend) Save(ctx context.Context, player string, e mines.Event) error {
	id, err := b.playerId(ctx, player)
	if err != nil {
		return err
	}
	_, err = b.q.CreateGameRecord(ctx, repository.CreateGameRecordParams{
		PlayerId: id,
		Event:    e,
	})
	if err != nil {
		return fmt.Errorf("unable to insert game record: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Summary(ctx context.Context, player string, params mines.Params) (Summary, error) {
	s := Summary{Player: player, Params: params}
	id, err := b.playerId(ctx, player)
	if err != nil {
		return s, err
	}
	records, err := b.q.ListGameRecords(ctx, repository.GameRecordFilter{
		PlayerId: &id,
		Params:   &params,
	})
	if err != nil {
		return s, fmt.Errorf("unable to list game records: %w", err)
	}
	for _, r := range records {
		s.Add(eventOf(r))
	}
	return s, nil
}

func (b *PostgresBackend) Highscores(ctx context.Context, params *mines.Params, limit int) ([]Highscore, error) {
	rows, err := b.q.GetHighscores(ctx, repository.HighscoreFilter{
		Params: params,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to fetch highscores: %w", err)
	}
	highscores := make([]Highscore, len(rows))
	for i, r := range rows {
		highscores[i] = Highscore{
			Player:  r.Username,
			Params:  mines.Params{Rows: r.BoardRows, Cols: r.BoardCols, Density: r.Density},
			Elapsed: time.Duration(r.ElapsedMs) * time.Millisecond,
		}
	}
	return highscores, nil
}

var outcomes = map[string]mines.EventKind{
	mines.EventWon.String():     mines.EventWon,
	mines.EventLost.String():    mines.EventLost,
	mines.EventAborted.String(): mines.EventAborted,
}

func eventOf(r repository.GameRecord) mines.Event {
	kind, ok := outcomes[r.Outcome]
	if !ok {
		kind = mines.EventReset
	}
	return mines.Event{
		Kind:      kind,
		Params:    r.Params(),
		MineCount: r.MineCount,
		Elapsed:   r.Elapsed(),
		Clicks:    r.Clicks,
		At:        r.EndedAt.Time,
	}
}
