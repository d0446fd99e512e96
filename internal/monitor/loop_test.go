package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/inactivity-monitor/internal/config"
	"github.com/CodexForgeBR/inactivity-monitor/internal/exitcode"
	"github.com/CodexForgeBR/inactivity-monitor/internal/notification"
	"github.com/CodexForgeBR/inactivity-monitor/internal/probe"
	"github.com/CodexForgeBR/inactivity-monitor/internal/settings"
	"github.com/CodexForgeBR/inactivity-monitor/internal/state"
)

type memStore struct {
	mu      sync.Mutex
	st      *state.ActivityState
	saveErr error
	saves   int
}

func (m *memStore) Load() *state.ActivityState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.st == nil {
		return state.NewActivityState()
	}
	copied := *m.st
	return &copied
}

func (m *memStore) Save(st *state.ActivityState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	copied := *st
	m.st = &copied
	return nil
}

type fixedSampler struct {
	sample probe.Sample
	calls  int
}

func (f *fixedSampler) Sample(ctx context.Context) probe.Sample {
	f.calls++
	return f.sample
}

type recordingGateway struct {
	mu    sync.Mutex
	kinds []string
}

func (g *recordingGateway) Dispatch(kind string, st *state.ActivityState) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.kinds = append(g.kinds, kind)
	return true
}

func (g *recordingGateway) sent() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.kinds...)
}

func testLoop(store StateStore, sampler probe.Sampler, gw Dispatcher, timeoutMinutes int) *Loop {
	l := New(store, sampler, gw,
		&config.Config{TimeoutMinutes: timeoutMinutes, Message: "final message"},
		settings.Default(),
		time.Millisecond)
	l.retryInitialInterval = time.Millisecond
	return l
}

func TestRunExitsWhenThresholdAlreadyReached(t *testing.T) {
	st := state.NewActivityState()
	st.ThresholdReached = true
	store := &memStore{st: st}
	sampler := &fixedSampler{}
	gw := &recordingGateway{}

	l := testLoop(store, sampler, gw, 100)
	l.Settings.SendMonitoringOnStart = true

	code := l.Run(context.Background())

	assert.Equal(t, exitcode.ThresholdReached, code)
	assert.Equal(t, []string{notification.KindStartReached}, gw.sent())
	assert.Zero(t, sampler.calls, "loop must not tick after terminal startup check")
}

func TestRunExitsWhenServiceDisabled(t *testing.T) {
	st := state.NewActivityState()
	st.ServiceDisabled = true
	store := &memStore{st: st}
	gw := &recordingGateway{}

	l := testLoop(store, &fixedSampler{}, gw, 100)
	l.Settings.SendMonitoringOnStart = true

	code := l.Run(context.Background())

	assert.Equal(t, exitcode.Disabled, code)
	assert.Equal(t, []string{notification.KindStartDisabled}, gw.sent())
}

func TestRunSkipsStartNotificationWhenDisabledInSettings(t *testing.T) {
	st := state.NewActivityState()
	st.ServiceDisabled = true
	gw := &recordingGateway{}

	l := testLoop(&memStore{st: st}, &fixedSampler{}, gw, 100)
	l.Settings.SendMonitoringOnStart = false

	l.Run(context.Background())

	assert.Empty(t, gw.sent())
}

func TestRunStopsAtTerminalThreshold(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	sampler := &fixedSampler{sample: probe.Sample{
		LoginTime:     now.Add(-120 * time.Minute),
		SessionActive: false,
	}}
	store := &memStore{}
	gw := &recordingGateway{}

	l := testLoop(store, sampler, gw, 100)
	l.Settings.SendMonitoringOnStart = true
	l.Settings.MonitoringAt30 = true
	l.Settings.MonitoringAt60 = true
	l.Settings.MonitoringAt90 = true
	l.Now = func() time.Time { return now }

	code := l.Run(context.Background())

	assert.Equal(t, exitcode.ThresholdReached, code)
	assert.Equal(t, []string{
		notification.KindStart,
		notification.KindThreshold30,
		notification.KindThreshold60,
		notification.KindThreshold90,
		notification.KindFinalRecipients,
		notification.KindFinalMonitoring,
	}, gw.sent())

	persisted := store.Load()
	assert.True(t, persisted.ThresholdReached)
	assert.True(t, persisted.Threshold30Sent)
	assert.True(t, persisted.Threshold60Sent)
	assert.True(t, persisted.Threshold90Sent)
}

func TestRunLatchesOncePerEpisode(t *testing.T) {
	base := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	sampler := &fixedSampler{sample: probe.Sample{
		LoginTime:     base.Add(-35 * time.Minute),
		SessionActive: false,
	}}
	store := &memStore{}
	gw := &recordingGateway{}

	l := testLoop(store, sampler, gw, 100)
	l.Settings.MonitoringAt30 = true
	l.Settings.MonitoringAt60 = true
	l.Settings.MonitoringAt90 = true
	l.Now = func() time.Time { return base }

	for i := 0; i < 3; i++ {
		terminal, err := l.tick(context.Background())
		require.NoError(t, err)
		assert.False(t, terminal)
	}

	assert.Equal(t, []string{notification.KindThreshold30}, gw.sent(),
		"a latched level must not re-notify on later ticks")
}

func TestRunFiresWeeklyHeartbeatOncePerDay(t *testing.T) {
	// Monday noon, activity fresh enough that no threshold fires.
	base := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	sampler := &fixedSampler{sample: probe.Sample{
		LoginTime:     base.Add(-5 * time.Minute),
		SessionActive: true,
	}}
	store := &memStore{}
	gw := &recordingGateway{}

	l := testLoop(store, sampler, gw, 100)
	l.Settings.WeeklyEnabled = true
	l.Settings.WeeklyDay = 1
	l.Settings.WeeklyHour = 12
	l.Now = func() time.Time { return base }

	for i := 0; i < 2; i++ {
		_, err := l.tick(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, []string{notification.KindWeekly}, gw.sent())
	assert.Equal(t, "2026-08-31", store.Load().LastWeeklySentDate)
}

func TestRunAbortsOnTickErrorWhenConfigured(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	gw := &recordingGateway{}

	l := testLoop(store, &fixedSampler{}, gw, 100)
	l.Settings.SendMonitoringOnStart = false
	l.Settings.ContinueOnTickError = false

	code := l.Run(context.Background())

	assert.Equal(t, exitcode.Error, code)
	assert.Equal(t, 1, store.saves)
}

func TestRunContinuesOnTickErrorByDefault(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	gw := &recordingGateway{}

	l := testLoop(store, &fixedSampler{}, gw, 100)
	l.Settings.SendMonitoringOnStart = false
	require.True(t, l.Settings.ContinueOnTickError)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	code := l.Run(ctx)

	assert.Equal(t, exitcode.Interrupted, code)
	assert.GreaterOrEqual(t, store.saves, 2, "loop should keep retrying failed ticks")
}

func TestRunReturnsInterruptedOnCancel(t *testing.T) {
	base := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	sampler := &fixedSampler{sample: probe.Sample{
		LoginTime:     base.Add(-time.Minute),
		SessionActive: true,
	}}

	l := testLoop(&memStore{}, sampler, &recordingGateway{}, 100)
	l.Settings.SendMonitoringOnStart = false
	l.Settings.WeeklyEnabled = false
	l.Now = func() time.Time { return base }
	l.PollInterval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	code := l.Run(ctx)

	assert.Equal(t, exitcode.Interrupted, code)
}

func TestTickRecoversFromPanic(t *testing.T) {
	l := testLoop(&memStore{}, &fixedSampler{}, &recordingGateway{}, 100)
	l.Now = func() time.Time { panic("clock exploded") }

	_, err := l.tick(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "clock exploded")
}
