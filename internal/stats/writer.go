package stats

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var Log = logrus.New()

const saveTimeout = 5 * time.Second

// Writer is a [mines.Recorder] that hands events to a [Backend] on its own
// goroutine, so that a slow database never stalls the game.
type Writer struct {
	backend Backend
	player  string
	events  chan mines.Event

	mu     sync.Mutex
	closed bool
}

func NewWriter(backend Backend, player string, buffer int) *Writer {
	return &Writer{
		backend: backend,
		player:  player,
		events:  make(chan mines.Event, buffer),
	}
}

// Record queues e without blocking. Resets of idle or finished games carry
// nothing worth storing and are dropped, as is anything recorded after
// [Writer.Close] or while the buffer is full.
func (w *Writer) Record(e mines.Event) {
	if e.Kind == mines.EventReset {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		Log.WithField("event", e.Kind.String()).Warn("stats writer closed, dropping event")
		return
	}
	select {
	case w.events <- e:
	default:
		Log.WithField("event", e.Kind.String()).Warn("stats buffer full, dropping event")
	}
}

// Close stops accepting events. [Writer.Run] returns once the queued ones
// are saved.
func (w *Writer) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.closed {
		w.closed = true
		close(w.events)
	}
}

// Run saves queued events until the writer is closed or ctx is done. On
// cancellation the events already queued are still saved.
func (w *Writer) Run(ctx context.Context) error {
	for {
		select {
		case e, ok := <-w.events:
			if !ok {
				return nil
			}
			w.save(ctx, e)
		case <-ctx.Done():
			w.Close()
			for e := range w.events {
				w.save(ctx, e)
			}
			return nil
		}
	}
}

// save detaches from ctx's cancellation so that an event dequeued during
// shutdown is not lost; only saveTimeout bounds it.
func (w *Writer) save(ctx context.Context, e mines.Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()

	fields := logrus.Fields{
		"player":  w.player,
		"params":  e.Params.Seed(),
		"event":   e.Kind.String(),
		"elapsed": e.Elapsed,
	}
	if err := w.backend.Save(ctx, w.player, e); err != nil {
		Log.WithFields(fields).WithError(err).Error("unable to save game event")
		return
	}
	Log.WithFields(fields).Debug("game event saved")
}
