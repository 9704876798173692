package playback

import (
	"errors"
	"fmt"
)

// ErrProcessing is returned when a machine is restored while it is processing
// an event, for example from inside a delegate action.
var ErrProcessing = errors.New("playback: cannot restore while an event is being processed")

// ErrEventQueued is returned by Post when the pending-event slot is already
// occupied. It signals a bug in the caller, typically a delegate action that
// posts more than one event, and is never absorbed by the machine.
type ErrEventQueued struct {
	// State is the current state at the time of the rejected call.
	State State
	// Pending is the event already waiting in the slot.
	Pending Event
	// Event is the rejected event.
	Event Event
}

func (e *ErrEventQueued) Error() string {
	return fmt.Sprintf("playback: cannot post event %q in state %q; event %q already queued",
		e.Event, e.State, e.Pending)
}

// ErrCallback is returned when a guard, entry action or hook panics while an
// event is processed. It wraps the recovered value so that errors.Is and
// errors.As can inspect it.
type ErrCallback struct {
	// HookType is the kind of callback that failed ("Guard", "OnEnter", "OnTransition", "OnUnhandled").
	HookType string
	// Name identifies the delegate action for OnEnter failures.
	Name string
	// State is the state associated with the callback.
	State State
	// Err is the error created from the recovered panic.
	Err error
}

func (e *ErrCallback) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("playback: error in %s callback %s for state %q: %v", e.HookType, e.Name, e.State, e.Err)
	}

	return fmt.Sprintf("playback: error in %s callback for state %q: %v", e.HookType, e.State, e.Err)
}

func (e *ErrCallback) Unwrap() error { return e.Err }

// ErrUnknownState is returned when a name or snapshot refers to a state the
// machine does not define, or to a state that cannot be current.
type ErrUnknownState struct {
	State State
}

func (e *ErrUnknownState) Error() string {
	return fmt.Sprintf("playback: unknown state %q", e.State)
}

// ErrUnknownEvent is returned when parsing a name that is not a known event.
type ErrUnknownEvent struct {
	Event Event
}

func (e *ErrUnknownEvent) Error() string {
	return fmt.Sprintf("playback: unknown event %q", e.Event)
}
