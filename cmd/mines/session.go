package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/stats"
)

const queryTimeout = 5 * time.Second

var faces = map[mines.Face]string{
	mines.FaceSmile: ":)",
	mines.FaceWon:   "B)",
	mines.FaceDead:  "X(",
}

// session drives one game from line-oriented text input. It owns the game;
// nothing else touches it.
type session struct {
	game      *mines.Game
	backend   stats.Backend
	player    string
	out       io.Writer
	showMines bool
}

func newSession(game *mines.Game, backend stats.Backend, player string, out io.Writer) *session {
	return &session{game: game, backend: backend, player: player, out: out}
}

func readLines(in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}

// run executes commands until input ends, the quit command is read or ctx
// is done. Commands on one line are separated by ";".
func (s *session) run(ctx context.Context, in io.Reader) error {
	lines := readLines(in)
	s.render()
	for {
		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return nil
		case line, ok = <-lines:
			if !ok {
				return nil
			}
		}
		for _, piece := range byPiece(line, ";") {
			cmd := strings.TrimSpace(piece)
			if cmd == "" {
				continue
			}
			err := s.execute(ctx, cmd)
			if errors.Is(err, errQuit) {
				return nil
			} else if err != nil {
				log.WithField("command", cmd).Debug(err)
				fmt.Fprintln(s.out, "error:", err)
			}
		}
		s.render()
	}
}

func (s *session) render() {
	snap := s.game.Snapshot(s.showMines)
	fmt.Fprintf(s.out, "%s %s  mines: %d  time: %s  clicks: %d\n",
		faces[snap.Face], snap.State, snap.Remaining,
		snap.Elapsed.Truncate(time.Second), snap.Clicks,
	)
	fmt.Fprint(s.out, snap.String())
}

func (s *session) printSummary(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	summary, err := s.backend.Summary(ctx, s.player, s.game.Params())
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s on %s: played %d, won %d, lost %d, abandoned %d\n",
		s.player, s.game.Params().Seed(),
		summary.Played(), summary.Wins, summary.Losses, summary.Resets,
	)
	if best, ok := summary.Best(); ok {
		fmt.Fprintf(s.out, "best time: %s\n", best)
	}
	return nil
}

func (s *session) printHighscores(ctx context.Context, limit int) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	params := s.game.Params()
	highscores, err := s.backend.Highscores(ctx, &params, limit)
	if err != nil {
		return err
	}
	if len(highscores) == 0 {
		fmt.Fprintln(s.out, "no wins yet on", params.Seed())
	}
	for i, h := range highscores {
		fmt.Fprintf(s.out, "%2d. %-16s %s\n", i+1, h.Player, h.Elapsed)
	}
	return nil
}
