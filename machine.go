// Package playback implements the media playback lifecycle as a small
// hierarchical state machine.
//
// A Machine owns the current state, validates and applies transitions, and
// invokes exactly one Delegate action when a state is entered. Events are
// funneled through a single pending slot so that a delegate action may post
// a follow-up event without starting a nested transition: the follow-up runs
// right after the current one completes.
//
// A Machine created with New assumes a single caller context. Use NewSync when
// events may be posted from several goroutines.
package playback

import (
	"fmt"
	"sync"

	"github.com/enetx/g"
	"github.com/rs/zerolog"
)

const (
	fieldState    = "state"
	fieldEvent    = "event"
	fieldPending  = "pending"
	fieldOldState = "old_state"
	fieldNewState = "new_state"
)

// New creates a machine in the given initial state. It performs no validation.
// If initial is StateStopped the OnStopped entry action is invoked once. New
// has no error to report through, so a panic in that action propagates to the
// caller.
func New(initial State, d Delegate) *Machine {
	return newMachine(initial, d, nopLocker{})
}

func newMachine(initial State, d Delegate, mu sync.Locker) *Machine {
	m := &Machine{
		current:      initial,
		history:      g.SliceOf(initial),
		delegate:     d,
		pending:      g.None[Event](),
		onTransition: g.NewSlice[TransitionHook](),
		onUnhandled:  g.NewSlice[UnhandledHook](),
		onRestore:    g.NewSlice[RestoreHook](),
		log:          zerolog.Nop(),
		mu:           mu,
	}

	if initial == StateStopped {
		d.OnStopped()
	}

	return m
}

// WithLogger sets the logger used for transitions, ignored events and
// contract violations.
func (m *Machine) WithLogger(l zerolog.Logger) *Machine {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.log = l.With().Str("component", "playback").Logger()
	return m
}

// OnTransition registers a hook called for every applied transition.
// Hooks must be registered before events are posted.
func (m *Machine) OnTransition(hook TransitionHook) *Machine {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onTransition.Push(hook)
	return m
}

// OnUnhandled registers a hook called for every discarded event.
// Hooks must be registered before events are posted.
func (m *Machine) OnUnhandled(hook UnhandledHook) *Machine {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onUnhandled.Push(hook)
	return m
}

// OnRestore registers a hook called after UnmarshalJSON restores a snapshot.
// Hooks must be registered before events are posted.
func (m *Machine) OnRestore(hook RestoreHook) *Machine {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onRestore.Push(hook)
	return m
}

// State returns the current state. It is safe to call from delegate actions.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.current
}

// History returns a copy of the states visited so far, starting with the
// initial state. History is never trimmed and grows by one state per applied
// transition for the lifetime of the machine.
func (m *Machine) History() g.Slice[State] {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.history.Clone()
}

// Post submits an event.
//
// If no event is being processed, Post processes the event and every event
// posted by the resulting entry actions before returning. If it is called
// while an event is being processed, typically from a delegate action, the
// event is queued and Post returns immediately.
//
// Only one event can wait at a time. A second Post while the slot is occupied
// returns *ErrEventQueued and leaves the queued event in place. Events that no
// rule handles are dropped without an error.
func (m *Machine) Post(event Event) error {
	m.mu.Lock()

	if m.pending.IsSome() {
		err := &ErrEventQueued{State: m.current, Pending: m.pending.Some(), Event: event}
		m.mu.Unlock()

		m.log.Error().
			Str(fieldState, string(err.State)).
			Str(fieldPending, string(err.Pending)).
			Str(fieldEvent, string(event)).
			Msg("event already queued")

		return err
	}

	m.pending = g.Some(event)

	if m.processing {
		m.mu.Unlock()
		return nil
	}

	m.processing = true
	m.mu.Unlock()

	return m.drain()
}

// drain processes pending events until the slot stays empty. If a callback
// fails, the slot and the processing flag are cleared so the machine accepts
// events again.
func (m *Machine) drain() error {
	done := false

	defer func() {
		if !done {
			m.mu.Lock()
			m.pending = g.None[Event]()
			m.processing = false
			m.mu.Unlock()
		}
	}()

	for {
		m.mu.Lock()

		if m.pending.IsNone() {
			m.processing = false
			m.mu.Unlock()

			done = true
			return nil
		}

		event := m.pending.Some()
		m.pending = g.None[Event]()
		state := m.current

		m.mu.Unlock()

		if err := m.process(state, event); err != nil {
			return err
		}
	}
}

// process applies the rule matching event in state, if any, and runs the
// hooks and the entry action of the destination.
func (m *Machine) process(state State, event Event) error {
	var found g.Option[rule]

	if err := m.call("Guard", "", state, func() { found = match(m.delegate, state, event) }); err != nil {
		return err
	}

	if found.IsNone() {
		m.log.Debug().Str(fieldState, string(state)).Str(fieldEvent, string(event)).Msg("event ignored")

		for hook := range m.onUnhandled.Iter() {
			if err := m.call("OnUnhandled", "", state, func() { hook(state, event) }); err != nil {
				return err
			}
		}

		return nil
	}

	t := Transition{From: state, To: found.Some().to, Event: event}

	m.mu.Lock()
	m.current = t.To
	m.history.Push(t.To)
	m.mu.Unlock()

	m.log.Debug().
		Str(fieldOldState, string(t.From)).
		Str(fieldNewState, string(t.To)).
		Str(fieldEvent, string(event)).
		Msg("transition")

	for hook := range m.onTransition.Iter() {
		if err := m.call("OnTransition", "", t.To, func() { hook(t) }); err != nil {
			return err
		}
	}

	if e := entryFor(t.To, event); e.IsSome() {
		enter := e.Some()
		return m.call("OnEnter", string(enter.name), t.To, func() { enter.action(m.delegate) })
	}

	return nil
}

// call runs fn and converts a panic into *ErrCallback.
func (m *Machine) call(hookType, name string, state State, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ErrCallback{HookType: hookType, Name: name, State: state, Err: fmt.Errorf("panic: %v", r)}
			m.log.Error().Err(err).Str(fieldState, string(state)).Msg("callback failed")
		}
	}()

	fn()
	return nil
}
