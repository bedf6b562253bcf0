// Package episode runs the trial of a single genome: it consumes one world
// snapshot per frame, decides when the trial is over and scores it.
package episode

import (
	"time"

	"github.com/baldhumanity/neat-mario/game"
)

// Outcome is the lifecycle state of an episode. Every state other than
// Playing is terminal.
type Outcome int

const (
	Playing Outcome = iota
	Stuck
	Dead
	Succeeded
)

func (o Outcome) String() string {
	switch o {
	case Playing:
		return "playing"
	case Stuck:
		return "stuck"
	case Dead:
		return "dead"
	case Succeeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// Terminal reports whether the episode is over.
func (o Outcome) Terminal() bool {
	return o != Playing
}

// SuccessBonus is added to the fitness of an episode that cleared the level.
const SuccessBonus = 1000.0

// Clock is the time source of an episode.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// Options configures the timeouts of an episode.
type Options struct {
	// StuckTimeout is how long the agent may stay at the same x position.
	StuckTimeout time.Duration
	// FinishTimeout caps the length of the whole episode.
	FinishTimeout time.Duration
}

// Episode is the state of one genome trial.
type Episode struct {
	opts  Options
	clock Clock

	current  game.Snapshot
	previous game.Snapshot
	window   game.TileWindow
	seen     bool
	state    Outcome
	ticks    int

	start          time.Time
	lastProgressX  int
	lastProgressAt time.Time
}

// New starts an episode at the clock's current time.
func New(opts Options, clock Clock) *Episode {
	if clock == nil {
		clock = SystemClock
	}
	now := clock.Now()
	return &Episode{
		opts:           opts,
		clock:          clock,
		state:          Playing,
		start:          now,
		lastProgressAt: now,
	}
}

// Advance feeds one frame into the episode. The first snapshot only
// establishes the baseline lives and level. Snapshots arriving after the
// episode reached a terminal state are ignored.
func (e *Episode) Advance(snap game.Snapshot) {
	if e.state.Terminal() {
		return
	}
	e.ticks++
	if e.seen {
		e.previous = e.current
	} else {
		e.previous = snap
		e.seen = true
	}
	e.current = snap
	e.window = game.ExtractWindow(&e.current)
	e.updateState(e.clock.Now())
}

func (e *Episode) updateState(now time.Time) {
	switch {
	case e.current.Lives < e.previous.Lives:
		e.state = Dead
	case e.current.Level > e.previous.Level:
		e.state = Succeeded
	default:
		notMoving := e.current.Agent.X == e.lastProgressX &&
			now.Sub(e.lastProgressAt) > e.opts.StuckTimeout
		tookTooLong := now.Sub(e.start) > e.opts.FinishTimeout
		if notMoving || tookTooLong {
			e.state = Stuck
		}
	}

	if e.current.Agent.X != e.lastProgressX {
		e.lastProgressX = e.current.Agent.X
		e.lastProgressAt = now
	}
}

// Outcome returns the current lifecycle state.
func (e *Episode) Outcome() Outcome {
	return e.state
}

// Window returns the tile window derived from the latest snapshot.
func (e *Episode) Window() game.TileWindow {
	return e.window
}

// Snapshot returns the latest snapshot.
func (e *Episode) Snapshot() game.Snapshot {
	return e.current
}

// Ticks returns the number of snapshots consumed while playing.
func (e *Episode) Ticks() int {
	return e.ticks
}

// Elapsed returns the time since the episode started.
func (e *Episode) Elapsed() time.Duration {
	return e.clock.Now().Sub(e.start)
}

// Fitness scores the episode as the agent's x position per whole elapsed
// second, plus SuccessBonus when the level was cleared. Episodes shorter than
// a second count as one second.
func (e *Episode) Fitness() float64 {
	secs := max(int64(e.Elapsed()/time.Second), 1)
	fitness := float64(e.current.Agent.X) / float64(secs)
	if e.state == Succeeded {
		fitness += SuccessBonus
	}
	return fitness
}
