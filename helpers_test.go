package playback_test

import (
	"strings"
	"testing"

	. "github.com/enetx/playback"
	"github.com/stretchr/testify/mock"
)

type delegateMock struct {
	mock.Mock
}

func newDelegate(t *testing.T) *delegateMock {
	t.Helper()

	d := new(delegateMock)
	d.Test(t)

	return d
}

func (d *delegateMock) IsDownloaded() bool      { return d.Called().Bool(0) }
func (d *delegateMock) IsAutoplayEnabled() bool { return d.Called().Bool(0) }
func (d *delegateMock) OnStartDownloading()     { d.Called() }
func (d *delegateMock) OnPrepare()              { d.Called() }
func (d *delegateMock) OnStopped()              { d.Called() }
func (d *delegateMock) OnStart()                { d.Called() }
func (d *delegateMock) OnPause()                { d.Called() }
func (d *delegateMock) OnResume()               { d.Called() }

// actions returns the names of the invoked actions in call order, skipping predicates.
func (d *delegateMock) actions() []string {
	var names []string

	for _, call := range d.Calls {
		if !strings.HasPrefix(call.Method, "Is") {
			names = append(names, call.Method)
		}
	}

	return names
}

// forget drops expectations and recorded calls.
func (d *delegateMock) forget() {
	d.ExpectedCalls = nil
	d.Calls = nil
}

// setUp creates a machine in the initial state and discards the calls made
// during construction.
func setUp(t *testing.T, initial State) (*Machine, *delegateMock) {
	t.Helper()

	d := newDelegate(t)
	if initial == StateStopped {
		d.On("OnStopped").Once()
	}

	m := New(initial, d)
	d.AssertExpectations(t)
	d.forget()

	return m, d
}
