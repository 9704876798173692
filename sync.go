package playback

import "sync"

// NewSync creates a machine that may receive events from several goroutines.
//
// The lock is held only while the machine's own fields are read or written,
// never while the delegate or a hook runs, so delegate actions can still post
// follow-up events. An event posted by another goroutine while an event is
// being processed is queued exactly like a reentrant one, and a second such
// event fails with *ErrEventQueued.
func NewSync(initial State, d Delegate) *Machine {
	return newMachine(initial, d, new(sync.Mutex))
}

// nopLocker is used by machines that assume a single caller context.
type nopLocker struct{}

func (nopLocker) Lock()   {}
func (nopLocker) Unlock() {}
