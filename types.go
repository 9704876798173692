package playback

import (
	"sync"

	"github.com/enetx/g"
	"github.com/rs/zerolog"
)

type (
	// State represents a playback lifecycle state.
	State g.String
	// Event represents an input that may trigger a transition. Events carry no payload.
	Event g.String

	// Delegate is the capability the machine drives. Predicates are evaluated on
	// every decision; actions are invoked as entry side effects and their outcome
	// is never inspected. The delegate must outlive the machine.
	Delegate interface {
		IsDownloaded() bool
		IsAutoplayEnabled() bool
		OnStartDownloading()
		OnPrepare()
		OnStopped()
		OnStart()
		OnPause()
		OnResume()
	}

	// Guard decides whether a rule applies, given the delegate at decision time.
	Guard func(d Delegate) bool
	// Action is an entry side effect invoked on the delegate.
	Action func(d Delegate)

	// Transition describes an applied state change.
	Transition struct {
		From  State
		To    State
		Event Event
	}

	// TransitionHook is called after a transition is committed and before the
	// entry action of the new state runs.
	TransitionHook func(t Transition)
	// UnhandledHook is called when an event matches no rule and is discarded.
	UnhandledHook func(state State, event Event)
	// RestoreHook is called after a snapshot has been restored into the machine.
	RestoreHook func(s Snapshot)

	// rule is a single guarded edge of the transition table.
	rule struct {
		event Event
		to    State
		guard Guard
		cond  g.String
	}

	// entry is an entry action for a state. An empty via matches any event.
	entry struct {
		via    Event
		name   g.String
		action Action
	}

	// Machine is the playback state machine.
	Machine struct {
		current  State
		history  g.Slice[State]
		delegate Delegate

		pending    g.Option[Event]
		processing bool

		onTransition g.Slice[TransitionHook]
		onUnhandled  g.Slice[UnhandledHook]
		onRestore    g.Slice[RestoreHook]

		log zerolog.Logger
		mu  sync.Locker
	}
)
