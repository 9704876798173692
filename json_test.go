package playback_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/enetx/g"
	. "github.com/enetx/playback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMachine_Serialization(t *testing.T) {
	m, d := setUp(t, StateDownloading)
	d.On("OnPrepare").Once()
	require.NoError(t, m.Post(EventDownloaded))

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"current":"preparing","history":["downloading","preparing"]}`, string(data))

	// Restoring does not run entry actions.
	restored, rd := setUp(t, StateStopped)
	require.NoError(t, json.Unmarshal(data, restored))
	assert.Empty(t, rd.Calls)

	assert.Equal(t, StatePreparing, restored.State())
	assert.Equal(t, g.SliceOf(StateDownloading, StatePreparing), restored.History())

	rd.On("IsAutoplayEnabled").Return(true)
	rd.On("OnStart").Once()
	require.NoError(t, restored.Post(EventPrepared))
	assert.Equal(t, StatePlaying, restored.State())
}

func TestMachine_SerializationNormalizesNames(t *testing.T) {
	m, _ := setUp(t, StatePlaying)

	require.NoError(t, json.Unmarshal([]byte(`{"current":" PAUSED "}`), m))

	assert.Equal(t, StatePaused, m.State())
	assert.Equal(t, g.SliceOf(StatePaused), m.History())
}

func TestMachine_SerializationUnknownState(t *testing.T) {
	for name, input := range map[string]string{
		"unknown current": `{"current":"rewinding","history":["stopped"]}`,
		"abstract current": `{"current":"running","history":["stopped"]}`,
		"unknown history": `{"current":"stopped","history":["stopped","seeking"]}`,
	} {
		t.Run(name, func(t *testing.T) {
			m, _ := setUp(t, StatePlaying)

			err := json.Unmarshal([]byte(input), m)
			require.Error(t, err)

			var unknown *ErrUnknownState
			assert.True(t, errors.As(err, &unknown))
			assert.Contains(t, err.Error(), "unknown state")
			assert.Equal(t, StatePlaying, m.State())
		})
	}
}

func TestMachine_RestoreWhileProcessing(t *testing.T) {
	m, d := setUp(t, StatePlaying)

	var restoreErr error

	d.On("OnPause").Run(func(mock.Arguments) {
		restoreErr = m.UnmarshalJSON([]byte(`{"current":"stopped"}`))
	}).Once()

	require.NoError(t, m.Post(EventPause))

	assert.ErrorIs(t, restoreErr, ErrProcessing)
	assert.Equal(t, StatePaused, m.State())
}

func TestMachine_RestoreHooks(t *testing.T) {
	m, _ := setUp(t, StatePlaying)

	var restored []Snapshot
	m.OnRestore(func(s Snapshot) {
		assert.Equal(t, s.Current, m.State())
		restored = append(restored, s)
	})

	require.Error(t, m.UnmarshalJSON([]byte(`{"current":"rewinding"}`)))
	assert.Empty(t, restored)

	require.NoError(t, m.UnmarshalJSON([]byte(`{"current":"paused","history":["playing","paused"]}`)))
	assert.Equal(t, []Snapshot{{Current: StatePaused, History: g.SliceOf(StatePlaying, StatePaused)}}, restored)
}

func TestMachine_RestoreHookPanicIsReported(t *testing.T) {
	m, _ := setUp(t, StatePlaying)
	m.OnRestore(func(Snapshot) { panic("hook") })

	err := m.UnmarshalJSON([]byte(`{"current":"paused"}`))

	var cbErr *ErrCallback
	require.True(t, errors.As(err, &cbErr))
	assert.Equal(t, "OnRestore", cbErr.HookType)
	assert.Equal(t, StatePaused, m.State())
}
