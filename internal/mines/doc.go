// Package mines is the game logic of a mine-clearing puzzle: mine placement,
// neighbor counts, flood-fill reveal, marks and the win/loss state machine.
//
// It knows nothing about drawing, input devices or storage. A caller feeds
// coordinates to [Game.HandleReveal] and [Game.HandleFlag], draws from
// [Game.Snapshot] and receives terminal transitions through a [Recorder].
package mines
