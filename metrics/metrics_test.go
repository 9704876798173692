package metrics

import (
	"strings"
	"testing"

	"github.com/enetx/playback"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// player is a delegate for local, autoplaying media that does nothing on entry.
type player struct{}

func (player) IsDownloaded() bool      { return true }
func (player) IsAutoplayEnabled() bool { return true }
func (player) OnStartDownloading()     {}
func (player) OnPrepare()              {}
func (player) OnStopped()              {}
func (player) OnStart()                {}
func (player) OnPause()                {}
func (player) OnResume()               {}

func TestCollector_CountsTransitionsAndUnhandledEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg, "test")
	m := c.Attach(playback.New(playback.StateStopped, player{}))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.state.WithLabelValues("stopped")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.state.WithLabelValues("playing")))

	require.NoError(t, m.Post(playback.EventPlay))
	require.NoError(t, m.Post(playback.EventPrepared))
	require.NoError(t, m.Post(playback.EventPrepared))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.transitions.WithLabelValues("stopped", "preparing", "play")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.transitions.WithLabelValues("preparing", "playing", "prepared")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.unhandled.WithLabelValues("playing", "prepared")))

	assert.Equal(t, 0.0, testutil.ToFloat64(c.state.WithLabelValues("stopped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.state.WithLabelValues("playing")))
}

func TestCollector_Exposition(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg, "test")
	c.Attach(playback.New(playback.StatePaused, player{}))

	expected := `
# HELP test_playback_state Current playback state (1 for the current state, 0 otherwise)
# TYPE test_playback_state gauge
test_playback_state{state="downloading"} 0
test_playback_state{state="paused"} 1
test_playback_state{state="playing"} 0
test_playback_state{state="preparing"} 0
test_playback_state{state="stopped"} 0
`

	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "test_playback_state"))
}

func TestCollector_FollowsRestoredSnapshot(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg, "test")
	m := c.Attach(playback.New(playback.StateStopped, player{}))

	require.NoError(t, m.UnmarshalJSON([]byte(`{"current":"paused","history":["preparing","paused"]}`)))

	assert.Equal(t, 0.0, testutil.ToFloat64(c.state.WithLabelValues("stopped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.state.WithLabelValues("paused")))
	assert.Zero(t, testutil.CollectAndCount(c.transitions))
}
