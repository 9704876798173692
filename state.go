package playback

import "github.com/enetx/g"

const (
	StateStopped State = "stopped"
	// StateRunning groups the transitions shared by every active state.
	// It is never current on its own.
	StateRunning     State = "running"
	StateDownloading State = "downloading"
	StatePreparing   State = "preparing"
	StatePlaying     State = "playing"
	StatePaused      State = "paused"
)

const (
	EventPlay       Event = "play"
	EventDownloaded Event = "downloaded"
	EventPrepared   Event = "prepared"
	EventStop       Event = "stop"
	EventPause      Event = "pause"
	EventStart      Event = "start"
	EventError      Event = "error"
)

var (
	leafStates = g.SliceOf(StateStopped, StateDownloading, StatePreparing, StatePlaying, StatePaused)
	allStates  = g.SetOf(StateStopped, StateRunning, StateDownloading, StatePreparing, StatePlaying, StatePaused)
	allEvents  = g.SliceOf(EventPlay, EventDownloaded, EventPrepared, EventStop, EventPause, EventStart, EventError)
)

// States returns every occupiable (leaf) state in lifecycle order.
func States() g.Slice[State] { return leafStates.Clone() }

// Events returns every known event.
func Events() g.Slice[Event] { return allEvents.Clone() }

// Parent returns the superstate of s, if any.
func (s State) Parent() g.Option[State] {
	switch s {
	case StateDownloading, StatePreparing, StatePlaying, StatePaused:
		return g.Some(StateRunning)
	default:
		return g.None[State]()
	}
}

// IsLeaf reports whether s can be the current state of a machine.
func (s State) IsLeaf() bool { return leafStates.Contains(s) }

// IsRunning reports whether s is one of the substates of StateRunning.
func (s State) IsRunning() bool { return s.Parent().IsSome() }

// ParseState parses a state name. Matching ignores case and surrounding space.
func ParseState(text string) (State, error) {
	s := State(g.String(text).Trim().Lower())
	if !allStates.Contains(s) {
		return "", &ErrUnknownState{State: State(text)}
	}

	return s, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}

	*s = parsed
	return nil
}

// ParseEvent parses an event name. Matching ignores case and surrounding space.
func ParseEvent(text string) (Event, error) {
	e := Event(g.String(text).Trim().Lower())
	if !allEvents.Contains(e) {
		return "", &ErrUnknownEvent{Event: Event(text)}
	}

	return e, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Event) UnmarshalText(text []byte) error {
	parsed, err := ParseEvent(string(text))
	if err != nil {
		return err
	}

	*e = parsed
	return nil
}
