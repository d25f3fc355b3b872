package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func TestIsIntegrityViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	assert.True(t, isIntegrityViolation(unique))
	assert.True(t, isIntegrityViolation(fmt.Errorf("insert: %w", unique)))
	assert.False(t, isIntegrityViolation(&pgconn.PgError{Code: pgerrcode.UndefinedTable}))
	assert.False(t, isIntegrityViolation(errors.New("boom")))
	assert.False(t, isIntegrityViolation(nil))
}

func TestGameRecordFilterWhereClause(t *testing.T) {
	clause, args := GameRecordFilter{}.WhereClause()
	assert.Empty(t, clause)
	assert.Empty(t, args)

	id := int64(7)
	outcome := "won"
	clause, args = GameRecordFilter{
		PlayerId: &id,
		Params:   &mines.Params{Rows: 9, Cols: 9, Density: 0.1},
		Outcome:  &outcome,
	}.WhereClause()
	assert.Equal(t,
		"player_id = @player_id AND board_rows = @board_rows AND board_cols = @board_cols AND density = @density AND outcome = @outcome",
		clause,
	)
	assert.Equal(t, pgx.NamedArgs{
		"player_id":  id,
		"board_rows": 9,
		"board_cols": 9,
		"density":    0.1,
		"outcome":    "won",
	}, args)
}

func TestHighscoreFilterWhereClause(t *testing.T) {
	name := "alice"
	clause, args := HighscoreFilter{Username: &name, Limit: 5}.WhereClause()
	assert.Equal(t, "username = @username", clause)
	assert.Equal(t, pgx.NamedArgs{"username": "alice"}, args)
}

func TestCreateGameRecordArgs(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	args := CreateGameRecordParams{
		PlayerId: 3,
		Event: mines.Event{
			Kind:      mines.EventLost,
			Params:    mines.Params{Rows: 16, Cols: 30, Density: 0.2},
			MineCount: 96,
			Elapsed:   1500 * time.Millisecond,
			Clicks:    12,
			At:        at,
		},
	}.Args()
	assert.Equal(t, "lost", args["outcome"])
	assert.Equal(t, int64(1500), args["elapsed_ms"])
	assert.Equal(t, 96, args["mine_count"])
	assert.Equal(t, at, args["ended_at"])
}

func TestGameRecordConversions(t *testing.T) {
	r := GameRecord{BoardRows: 9, BoardCols: 8, Density: 0.1, ElapsedMs: 2500}
	assert.Equal(t, mines.Params{Rows: 9, Cols: 8, Density: 0.1}, r.Params())
	assert.Equal(t, 2500*time.Millisecond, r.Elapsed())
}
