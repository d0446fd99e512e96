package state_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/inactivity-monitor/internal/state"
)

func newStore(t *testing.T) *state.Store {
	t.Helper()
	return state.NewStore(filepath.Join(t.TempDir(), "state.json"))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s := newStore(t)

	st := s.Load()

	assert.Zero(t, st.LastLoginTimestamp)
	assert.Zero(t, st.LastInputTimestamp)
	assert.False(t, st.Threshold30Sent)
	assert.False(t, st.Threshold60Sent)
	assert.False(t, st.Threshold90Sent)
	assert.False(t, st.ThresholdReached)
	assert.False(t, st.ServiceDisabled)
	assert.Empty(t, st.LastWeeklySentDate)
}

func TestLoadCorruptFileReturnsDefaults(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0644))

	st := s.Load()

	assert.Zero(t, st.LastActivity())
	assert.False(t, st.ThresholdReached)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newStore(t)

	in := &state.ActivityState{
		LastLoginTimestamp: 1700000000,
		LastInputTimestamp: 1700000100,
		Threshold30Sent:    true,
		Threshold90Sent:    true,
		LastWeeklySentDate: "2026-08-31",
	}
	require.NoError(t, s.Save(in))

	out := s.Load()
	assert.Equal(t, in, out)
}

func TestSaveOverwritesPreviousRecord(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Save(&state.ActivityState{LastLoginTimestamp: 100, Threshold30Sent: true}))
	require.NoError(t, s.Save(&state.ActivityState{LastLoginTimestamp: 200}))

	out := s.Load()
	assert.Equal(t, int64(200), out.LastLoginTimestamp)
	assert.False(t, out.Threshold30Sent)
}

func TestSaveWritesIndentedJSON(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save(state.NewActivityState()))

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Contains(t, string(data), "    \"last_login_timestamp\"")
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save(state.NewActivityState()))

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.json", entries[0].Name())
}

func TestResetFlagsClearsLatchesKeepsWatermarks(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save(&state.ActivityState{
		LastLoginTimestamp: 123,
		LastInputTimestamp: 456,
		Threshold30Sent:    true,
		Threshold60Sent:    true,
		Threshold90Sent:    true,
		ThresholdReached:   true,
		ServiceDisabled:    true,
		LastWeeklySentDate: "2026-08-30",
	}))

	require.NoError(t, s.ResetFlags())

	out := s.Load()
	assert.Equal(t, int64(123), out.LastLoginTimestamp)
	assert.Equal(t, int64(456), out.LastInputTimestamp)
	assert.Equal(t, "2026-08-30", out.LastWeeklySentDate)
	assert.False(t, out.Threshold30Sent)
	assert.False(t, out.Threshold60Sent)
	assert.False(t, out.Threshold90Sent)
	assert.False(t, out.ThresholdReached)
	assert.False(t, out.ServiceDisabled)
}

func TestLastActivityPicksLaterWatermark(t *testing.T) {
	st := &state.ActivityState{LastLoginTimestamp: 50, LastInputTimestamp: 80}
	assert.Equal(t, int64(80), st.LastActivity())

	st = &state.ActivityState{LastLoginTimestamp: 90, LastInputTimestamp: 80}
	assert.Equal(t, int64(90), st.LastActivity())

	assert.Zero(t, state.NewActivityState().LastActivity())
}
