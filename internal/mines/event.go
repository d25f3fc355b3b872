package mines

import "time"

type EventKind int8

const (
	EventWon EventKind = iota
	EventLost
	EventAborted // reset while the game was running
	EventReset   // reset of an idle or finished game
)

func (k EventKind) String() string {
	switch k {
	case EventWon:
		return "won"
	case EventLost:
		return "lost"
	case EventAborted:
		return "aborted"
	case EventReset:
		return "reset"
	default:
		return "invalid"
	}
}

// Event is reported to a [Recorder] on terminal transitions and resets.
type Event struct {
	Kind      EventKind
	Params    Params
	MineCount int
	Elapsed   time.Duration
	Clicks    int
	At        time.Time
}

// Recorder receives game events. It is called synchronously from the game's
// handlers and must not call back into the game.
type Recorder interface {
	Record(Event)
}

type RecorderFunc func(Event)

func (f RecorderFunc) Record(e Event) {
	f(e)
}

type nopRecorder struct{}

func (nopRecorder) Record(Event) {}
