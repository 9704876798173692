package playback

import "github.com/enetx/g"

// StateMachine is the surface a player uses to drive playback.
type StateMachine interface {
	Post(Event) error
	State() State
	History() g.Slice[State]
	ToDOT() g.String
	MarshalJSON() ([]byte, error)
	UnmarshalJSON(data []byte) error
}

// Interface compliance check.
var _ StateMachine = (*Machine)(nil)
