package playback

import (
	"encoding/json"
	"fmt"

	"github.com/enetx/g"
)

// Snapshot is a serializable representation of a machine's state.
type Snapshot struct {
	Current State          `json:"current"`
	History g.Slice[State] `json:"history"`
}

// Snapshot returns the current state and history of the machine.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{Current: m.current, History: m.history.Clone()}
}

// MarshalJSON implements the json.Marshaler interface.
func (m *Machine) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Snapshot())
}

// UnmarshalJSON implements the json.Unmarshaler interface. It restores the
// current state and history without invoking any entry action, then runs the
// OnRestore hooks.
func (m *Machine) UnmarshalJSON(data []byte) error {
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("failed to unmarshal playback state: %w", err)
	}

	if !snapshot.Current.IsLeaf() {
		return &ErrUnknownState{State: snapshot.Current}
	}

	for state := range snapshot.History.Iter() {
		if !state.IsLeaf() {
			return &ErrUnknownState{State: state}
		}
	}

	if snapshot.History.Empty() {
		snapshot.History = g.SliceOf(snapshot.Current)
	}

	m.mu.Lock()

	if m.processing {
		m.mu.Unlock()
		return ErrProcessing
	}

	m.current = snapshot.Current
	m.history = snapshot.History.Clone()
	m.mu.Unlock()

	for hook := range m.onRestore.Iter() {
		if err := m.call("OnRestore", "", snapshot.Current, func() { hook(snapshot) }); err != nil {
			return err
		}
	}

	return nil
}
