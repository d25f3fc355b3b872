package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type Player struct {
	PlayerId  int64              `db:"player_id"`
	Username  string             `db:"username"`
	CreatedAt pgtype.Timestamptz `db:"created_at"`
	UpdatedAt pgtype.Timestamptz `db:"updated_at"`
}

func (q *Queries) CreatePlayer(ctx context.Context, username string) (*Player, error) {
	rows, _ := q.db.Query(
		ctx,
		"INSERT INTO player (username) VALUES ($1) RETURNING *",
		username,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Player])
}

func (q *Queries) FetchPlayer(ctx context.Context, username string) (*Player, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM player WHERE username = $1", username,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Player])
}

// EnsurePlayer returns the player called username, creating it first if
// needed. A concurrent insert of the same name is resolved by fetching the
// existing row.
func (q *Queries) EnsurePlayer(ctx context.Context, username string) (*Player, error) {
	player, err := q.CreatePlayer(ctx, username)
	if isIntegrityViolation(err) {
		return q.FetchPlayer(ctx, username)
	} else if err != nil {
		return nil, fmt.Errorf("unable to insert player: %w", err)
	}
	return player, nil
}
