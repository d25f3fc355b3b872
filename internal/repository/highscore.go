package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type Highscore struct {
	GameRecordId int64   `db:"game_record_id"`
	Username     string  `db:"username"`
	BoardRows    int     `db:"board_rows"`
	BoardCols    int     `db:"board_cols"`
	Density      float64 `db:"density"`
	MineCount    int     `db:"mine_count"`
	ElapsedMs    int64   `db:"elapsed_ms"`
}

type HighscoreFilter struct {
	Username *string
	Params   *mines.Params
	Limit    int
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
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
	return strings.Join(clauses, " AND "), args
}

// GetHighscores lists won games, fastest first.
func (q *Queries) GetHighscores(
	ctx context.Context, filter HighscoreFilter,
) ([]Highscore, error) {
	query := `
	SELECT
		game_record_id,
		username,
		board_rows,
		board_cols,
		density,
		mine_count,
		elapsed_ms
	FROM game_record
		JOIN player USING (player_id)
	WHERE outcome = 'won'
	`
	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}
	query += " ORDER BY elapsed_ms, ended_at"
	if filter.Limit > 0 {
		query += " LIMIT @limit"
		args["limit"] = filter.Limit
	}

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
