package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type GameRecord struct {
	GameRecordId int64              `db:"game_record_id"`
	PlayerId     int64              `db:"player_id"`
	BoardRows    int                `db:"board_rows"`
	BoardCols    int                `db:"board_cols"`
	Density      float64            `db:"density"`
	MineCount    int                `db:"mine_count"`
	Outcome      string             `db:"outcome"`
	ElapsedMs    int64              `db:"elapsed_ms"`
	Clicks       int                `db:"clicks"`
	EndedAt      pgtype.Timestamptz `db:"ended_at"`
	CreatedAt    pgtype.Timestamptz `db:"created_at"`
}

func (r GameRecord) Params() mines.Params {
	return mines.Params{Rows: r.BoardRows, Cols: r.BoardCols, Density: r.Density}
}

func (r GameRecord) Elapsed() time.Duration {
	return time.Duration(r.ElapsedMs) * time.Millisecond
}

type CreateGameRecordParams struct {
	PlayerId int64
	Event    mines.Event
}

func (p CreateGameRecordParams) Args() pgx.NamedArgs {
	return pgx.NamedArgs{
		"player_id":  p.PlayerId,
		"board_rows": p.Event.Params.Rows,
		"board_cols": p.Event.Params.Cols,
		"density":    p.Event.Params.Density,
		"mine_count": p.Event.MineCount,
		"outcome":    p.Event.Kind.String(),
		"elapsed_ms": p.Event.Elapsed.Milliseconds(),
		"clicks":     p.Event.Clicks,
		"ended_at":   p.Event.At,
	}
}

func (q *Queries) CreateGameRecord(
	ctx context.Context, params CreateGameRecordParams,
) (*GameRecord, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_record (
			player_id, board_rows, board_cols, density, mine_count,
			outcome, elapsed_ms, clicks, ended_at
		)
		VALUES (
			@player_id, @board_rows, @board_cols, @density, @mine_count,
			@outcome, @elapsed_ms, @clicks, @ended_at
		)
		RETURNING *;`,
		params.Args(),
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameRecord])
}

type GameRecordFilter struct {
	PlayerId *int64
	Params   *mines.Params
	Outcome  *string
}

func (f GameRecordFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.PlayerId != nil {
		clauses = append(clauses, "player_id = @player_id")
		args["player_id"] = *f.PlayerId
	}
	if f.Params != nil {
		clauses = append(clauses,
			"board_rows = @board_rows",
			"board_cols = @board_cols",
			"density = @density",
		)
		args["board_rows"] = f.Params.Rows
		args["board_cols"] = f.Params.Cols
		args["density"] = f.Params.Density
	}
	if f.Outcome != nil {
		clauses = append(clauses, "outcome = @outcome")
		args["outcome"] = *f.Outcome
	}
	return strings.Join(clauses, " AND "), args
}

func (q *Queries) ListGameRecords(
	ctx context.Context, filter GameRecordFilter,
) ([]GameRecord, error) {
	query := "SELECT * FROM game_record"
	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}
	query += " ORDER BY ended_at;"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[GameRecord])
}
