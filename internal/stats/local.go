package stats

import (
	"context"
	"errors"
	"fmt"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/store"
)

// LocalBackend keeps one [Summary] per player and configuration in a sqlite
// [store.Store].
type LocalBackend struct {
	store *store.Store
}

func NewLocalBackend(s *store.Store) *LocalBackend {
	return &LocalBackend{store: s}
}

func summaryKey(player string, params mines.Params) string {
	return player + "/" + params.Seed()
}

func (b *LocalBackend) Save(ctx context.Context, player string, e mines.Event) error {
	var s Summary
	key := summaryKey(player, e.Params)
	return b.store.Update(ctx, key, &s, func() error {
		s.Player = player
		s.Params = e.Params
		s.Add(e)
		return nil
	})
}

func (b *LocalBackend) Summary(ctx context.Context, player string, params mines.Params) (Summary, error) {
	s := Summary{Player: player, Params: params}
	err := b.store.Get(ctx, summaryKey(player, params), &s)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return s, fmt.Errorf("unable to read summary: %w", err)
	}
	return s, nil
}

func (b *LocalBackend) Highscores(ctx context.Context, params *mines.Params, limit int) ([]Highscore, error) {
	keys, err := b.store.Keys(ctx)
	if err != nil {
		return nil, err
	}
	highscores := make([]Highscore, 0)
	for _, key := range keys {
		var s Summary
		if err := b.store.Get(ctx, key, &s); err != nil {
			return nil, fmt.Errorf("unable to read summary %s: %w", key, err)
		}
		if params != nil && s.Params != *params {
			continue
		}
		for _, elapsed := range s.WinLengths {
			highscores = append(highscores, Highscore{s.Player, s.Params, elapsed})
		}
	}
	return sortHighscores(highscores, limit), nil
}
