package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var errQuit = errors.New("quit")

type nargs struct{ min, max int }

// Maps known commands to the number of arguments they take
var commandNargs = map[string]nargs{
	"o":       {2, 2},
	"f":       {2, 2},
	"n":       {0, 3},
	"size":    {2, 2},
	"density": {1, 1},
	"b":       {0, 0},
	"s":       {0, 0},
	"h":       {0, 1},
	"q":       {0, 0},
	"?":       {0, 0},
}

const help = `o ROW COL       open a cell
f ROW COL       cycle the mark on a cell
n [key=value]   new game, optionally with rows=, cols=, density=
size ROWS COLS  new game with another board size
density D       new game with another mine density
b               toggle showing mines
s               show stats for the current configuration
h [N]           show the N best times (10 by default)
q               quit
Several commands can be given on one line separated by ";".
`

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

func (s *session) execute(ctx context.Context, c string) error {
	parts := strings.Fields(c)
	n, ok := commandNargs[parts[0]]
	if !ok {
		return fmt.Errorf("unknown command %q, try ?", parts[0])
	}
	args := parts[1:]
	if len(args) < n.min || len(args) > n.max {
		return errors.New("invalid number of arguments")
	}

	switch parts[0] {
	case "o":
		row, col, err := parseRowCol(args)
		if err != nil {
			return err
		}
		res, err := s.game.HandleReveal(row, col)
		if err != nil {
			return err
		}
		switch res.State {
		case mines.Won:
			fmt.Fprintf(s.out, "cleared in %s\n", s.game.Elapsed())
		case mines.Lost:
			if res.Outcome == mines.MineHit {
				fmt.Fprintln(s.out, "boom")
			}
		}
		return nil
	case "f":
		row, col, err := parseRowCol(args)
		if err != nil {
			return err
		}
		_, err = s.game.HandleFlag(row, col)
		return err
	case "n":
		params, err := config.DecodeParams(s.game.Params(), args)
		if err != nil {
			return err
		}
		return s.game.ResetWith(params)
	case "size":
		rows, cols, err := parseRowCol(args)
		if err != nil {
			return err
		}
		params := s.game.Params()
		params.Rows, params.Cols = rows, cols
		return s.game.ResetWith(params)
	case "density":
		density, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return errors.New("density must be a number")
		}
		params := s.game.Params()
		params.Density = density
		return s.game.ResetWith(params)
	case "b":
		s.showMines = !s.showMines
		return nil
	case "s":
		return s.printSummary(ctx)
	case "h":
		limit := 10
		if len(args) == 1 {
			var err error
			if limit, err = strconv.Atoi(args[0]); err != nil || limit < 1 {
				return errors.New("count must be a positive int")
			}
		}
		return s.printHighscores(ctx, limit)
	case "q":
		return errQuit
	case "?":
		fmt.Fprint(s.out, help)
		return nil
	}
	return errors.New("invalid command")
}
