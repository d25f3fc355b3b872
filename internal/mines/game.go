package mines

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type State int8

const (
	Idle State = iota
	Running
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "invalid"
	}
}

// Over reports whether s is terminal.
func (s State) Over() bool {
	return s == Won || s == Lost
}

type Outcome int8

const (
	NoEffect Outcome = iota
	CellsOpened
	MarkChanged
	MineHit
)

func (o Outcome) String() string {
	switch o {
	case NoEffect:
		return "no effect"
	case CellsOpened:
		return "cells opened"
	case MarkChanged:
		return "mark changed"
	case MineHit:
		return "mine hit"
	default:
		return "invalid"
	}
}

// Change is a cell whose displayed state changed as a result of an action.
type Change struct {
	Point
	State CellState
}

type Result struct {
	Outcome   Outcome
	State     State
	Mark      Mark
	Changed   []Change
	Remaining int
}

// Game drives a single board through the idle, running, won and lost
// states. It is not safe for concurrent use.
type Game struct {
	params    Params
	board     *Board
	state     State
	clicks    int
	startedAt time.Time
	endedAt   time.Time
	exploded  int // index of the mine that lost the game, -1 otherwise
	rnd       *rand.Rand
	now       func() time.Time
	recorder  Recorder
	busy      bool
}

type Option func(*Game)

func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rnd = r }
}

func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

func WithRecorder(r Recorder) Option {
	return func(g *Game) { g.recorder = r }
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func newGame(opts ...Option) *Game {
	g := &Game{
		exploded: -1,
		now:      time.Now,
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rnd == nil {
		g.rnd = newRand()
	}
	return g
}

func NewGame(params Params, opts ...Option) (*Game, error) {
	g := newGame(opts...)
	board, err := NewBoard(params, g.rnd)
	if err != nil {
		return nil, err
	}
	g.params = params
	g.board = board
	return g, nil
}

// newGameWithBoard starts an idle game on a prepared board. The game's
// params are the board's.
func newGameWithBoard(board *Board, opts ...Option) *Game {
	g := newGame(opts...)
	g.params = board.Params()
	g.board = board
	return g
}

func (g *Game) enter() error {
	if g.busy {
		return ErrBusy
	}
	g.busy = true
	return nil
}

func (g *Game) leave() {
	g.busy = false
}

func (g *Game) State() State { return g.state }
func (g *Game) Clicks() int { return g.clicks }
func (g *Game) Params() Params { return g.params }
func (g *Game) MineCount() int { return g.board.MineCount() }
func (g *Game) Rows() int { return g.board.Rows() }
func (g *Game) Cols() int { return g.board.Cols() }
func (g *Game) Solved() bool { return g.board.Solved() }
func (g *Game) RevealedCount() int { return g.board.RevealedCount() }

func (g *Game) Cell(row, col int) (Cell, error) {
	return g.board.Cell(row, col)
}

// Remaining is the mine count minus the number of flags. It goes negative
// when the player places more flags than there are mines.
func (g *Game) Remaining() int {
	return g.board.MineCount() - g.board.FlagCount()
}

// Elapsed is the time since the first reveal, frozen once the game is over.
func (g *Game) Elapsed() time.Duration {
	switch g.state {
	case Running:
		return g.now().Sub(g.startedAt)
	case Won, Lost:
		return g.endedAt.Sub(g.startedAt)
	default:
		return 0
	}
}

func (g *Game) result(o Outcome) Result {
	return Result{Outcome: o, State: g.state, Remaining: g.Remaining()}
}

// HandleReveal opens the cell at row:col. The first reveal of a game never
// hits a mine: a mine found there is moved elsewhere first.
func (g *Game) HandleReveal(row, col int) (Result, error) {
	if err := g.enter(); err != nil {
		return Result{}, err
	}
	defer g.leave()

	if !g.board.InBounds(row, col) {
		return g.result(NoEffect), ErrOutOfBounds
	}
	if g.state.Over() {
		return g.result(NoEffect), nil
	}
	i := g.board.index(row, col)
	if c := g.board.cells[i]; c.Revealed || c.Mark == Flagged {
		return g.result(NoEffect), nil
	}

	g.clicks++
	if g.state == Idle {
		g.state = Running
		g.startedAt = g.now()
		Log.WithFields(logrus.Fields{
			"params": g.params.Seed(),
			"mines":  g.board.MineCount(),
		}).Debug("game started")
	}

	rev, err := g.board.Reveal(row, col)
	if err != nil {
		return g.result(NoEffect), err
	}
	if rev.Kind == HitMine && g.clicks == 1 {
		Log.WithFields(logrus.Fields{"row": row, "col": col}).
			Debug("relocating mine under first click")
		if err := g.board.RelocateMine(row, col); err != nil {
			return g.result(NoEffect), err
		}
		if rev, err = g.board.Reveal(row, col); err != nil {
			return g.result(NoEffect), err
		}
		if rev.Kind != Opened {
			return g.result(NoEffect), AssertionError{
				fmt.Sprintf("first click at %d:%d still unsafe", row, col),
			}
		}
	}

	res := g.result(NoEffect)
	switch rev.Kind {
	case HitMine:
		res.Outcome = MineHit
		g.lose(i, &res)
	case Opened:
		res.Outcome = CellsOpened
		for _, c := range rev.Cells {
			res.Changed = append(res.Changed, Change{c.Point, CellState(c.Count)})
		}
		if g.board.Solved() {
			g.win(&res)
		}
	}
	res.State = g.state
	res.Remaining = g.Remaining()
	return res, nil
}

func (g *Game) lose(exploded int, res *Result) {
	g.state = Lost
	g.endedAt = g.now()
	g.exploded = exploded
	for i := range g.board.cells {
		switch s := g.board.stateAt(i, true, exploded, false); s {
		case ExplodedMine, UnflaggedMine, WrongFlag:
			row, col := g.board.coords(i)
			res.Changed = append(res.Changed, Change{Point{row, col}, s})
		}
	}
	g.record(EventLost)
}

func (g *Game) win(res *Result) {
	g.state = Won
	g.endedAt = g.now()
	for i, c := range g.board.cells {
		if c.Mine && c.Mark != Flagged {
			g.board.flag(i)
			row, col := g.board.coords(i)
			res.Changed = append(res.Changed, Change{Point{row, col}, Flag})
		}
	}
	g.record(EventWon)
}

// HandleFlag cycles the mark on a covered cell. Marks do not start the
// clock.
func (g *Game) HandleFlag(row, col int) (Result, error) {
	if err := g.enter(); err != nil {
		return Result{}, err
	}
	defer g.leave()

	if !g.board.InBounds(row, col) {
		return g.result(NoEffect), ErrOutOfBounds
	}
	if g.state.Over() {
		return g.result(NoEffect), nil
	}
	mark, changed, err := g.board.ToggleMark(row, col)
	if err != nil || !changed {
		return g.result(NoEffect), err
	}
	res := g.result(MarkChanged)
	res.Mark = mark
	res.Changed = []Change{{Point{row, col}, markState(mark)}}
	return res, nil
}

// Reset starts a new game with the current params.
func (g *Game) Reset() error {
	return g.ResetWith(g.params)
}

// ResetWith discards the board and starts a new idle game with params. A
// running game is reported as aborted. On error the current game is kept.
func (g *Game) ResetWith(params Params) error {
	if err := g.enter(); err != nil {
		return err
	}
	defer g.leave()

	board, err := NewBoard(params, g.rnd)
	if err != nil {
		return err
	}
	if g.state == Running {
		g.record(EventAborted)
	} else {
		g.record(EventReset)
	}

	g.params = params
	g.board = board
	g.state = Idle
	g.clicks = 0
	g.startedAt = time.Time{}
	g.endedAt = time.Time{}
	g.exploded = -1
	return nil
}

func (g *Game) record(kind EventKind) {
	e := Event{
		Kind:      kind,
		Params:    g.params,
		MineCount: g.board.MineCount(),
		Elapsed:   g.Elapsed(),
		Clicks:    g.clicks,
		At:        g.now(),
	}
	Log.WithFields(logrus.Fields{
		"event":   kind.String(),
		"elapsed": e.Elapsed,
		"clicks":  e.Clicks,
	}).Debug("game event")
	g.recorder.Record(e)
}
