// Package overlay drives the capture-deterrence obstruction as an
// explicit state machine. It only reacts to injected environment
// events, never to real OS signals, so it can be exercised with
// synthetic ones.
package overlay

import (
	"sync"
	"time"
)

// State of the deterrence shield.
type State int

const (
	Visible State = iota
	Obstructed
)

func (s State) String() string {
	if s == Obstructed {
		return "obstructed"
	}

	return "visible"
}

// Event is an environment signal forwarded by the client.
type Event int

const (
	VisibilityHidden Event = iota
	VisibilityVisible
	WindowBlur
	WindowFocus
	CaptureChord
	ContextMenu
)

// DefaultHold is how long a capture attempt keeps the view obstructed.
const DefaultHold = 2 * time.Second

// Shield is the {Visible, Obstructed} machine behind the overlay.
// The view is obstructed while the window is away (hidden or
// blurred) and for a short hold after a capture chord.
type Shield struct {
	mu    sync.Mutex
	state State
	away  bool
	hold  time.Duration
	timer *time.Timer
}

// NewShield builds a shield with the given capture hold duration;
// zero or negative falls back to DefaultHold.
func NewShield(hold time.Duration) *Shield {
	if hold <= 0 {
		hold = DefaultHold
	}

	return &Shield{hold: hold}
}

// Notify feeds one environment event and returns the resulting state.
func (s *Shield) Notify(event Event) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch event {
	case VisibilityHidden, WindowBlur:
		s.away = true
		s.state = Obstructed
	case VisibilityVisible, WindowFocus:
		s.away = false
		if s.timer == nil {
			s.state = Visible
		}
	case CaptureChord:
		s.state = Obstructed
		if s.timer != nil {
			s.timer.Stop()
		}
		s.timer = time.AfterFunc(s.hold, s.release)
	case ContextMenu:
		// swallowed, context menus are simply refused
	}

	return s.state
}

// release clears a capture hold; the view stays obstructed while the
// window is still away.
func (s *Shield) release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.timer = nil
	if !s.away {
		s.state = Visible
	}
}

// State returns the current state.
func (s *Shield) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}
