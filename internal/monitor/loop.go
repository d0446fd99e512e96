// Package monitor runs the monitoring loop over the process lifetime.
//
// One tick is: sample the activity probes, merge into the watermarks,
// evaluate the inactivity thresholds, evaluate the weekly heartbeat,
// persist the state, sleep. The loop ends when the terminal threshold
// fires, the context is canceled, or (with continue-on-error disabled) a
// tick fails.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"

	"github.com/CodexForgeBR/inactivity-monitor/internal/activity"
	"github.com/CodexForgeBR/inactivity-monitor/internal/config"
	"github.com/CodexForgeBR/inactivity-monitor/internal/exitcode"
	"github.com/CodexForgeBR/inactivity-monitor/internal/notification"
	"github.com/CodexForgeBR/inactivity-monitor/internal/probe"
	"github.com/CodexForgeBR/inactivity-monitor/internal/settings"
	"github.com/CodexForgeBR/inactivity-monitor/internal/state"
	"github.com/CodexForgeBR/inactivity-monitor/internal/threshold"
	"github.com/CodexForgeBR/inactivity-monitor/internal/weekly"
)

// StateStore is the durable state boundary the loop needs.
type StateStore interface {
	Load() *state.ActivityState
	Save(*state.ActivityState) error
}

// Dispatcher sends one notification, reporting delivery success.
type Dispatcher interface {
	Dispatch(kind string, st *state.ActivityState) bool
}

// Loop owns the in-memory state for the duration of each tick.
type Loop struct {
	Store    StateStore
	Sampler  probe.Sampler
	Gateway  Dispatcher
	Config   *config.Config
	Settings *settings.Settings

	PollInterval time.Duration
	Now          func() time.Time

	retryInitialInterval time.Duration
}

// New assembles a loop with the default clock and poll cadence.
func New(store StateStore, sampler probe.Sampler, gateway Dispatcher, cfg *config.Config, set *settings.Settings, pollInterval time.Duration) *Loop {
	return &Loop{
		Store:                store,
		Sampler:              sampler,
		Gateway:              gateway,
		Config:               cfg,
		Settings:             set,
		PollInterval:         pollInterval,
		Now:                  time.Now,
		retryInitialInterval: time.Second,
	}
}

// Run executes the loop until a terminal condition and returns an exit
// code. The startup checks mirror the persisted state: a monitor that
// already reached its threshold, or whose service is disabled, announces
// itself (when configured to) and exits without ever ticking.
func (l *Loop) Run(ctx context.Context) int {
	logrus.Info("########## starting inactivity monitor ##########")

	st := l.Store.Load()

	if st.ThresholdReached {
		logrus.Info("service started but threshold already reached")
		l.notifyOnStart(notification.KindStartReached, st)
		return exitcode.ThresholdReached
	}

	if st.ServiceDisabled {
		logrus.Info("service started but is disabled")
		l.notifyOnStart(notification.KindStartDisabled, st)
		return exitcode.Disabled
	}

	logrus.Info("service started and is active")
	l.notifyOnStart(notification.KindStart, st)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = l.retryInitialInterval
	bo.MaxElapsedTime = 0 // retry forever

	for {
		terminal, err := l.tick(ctx)
		if err != nil {
			logrus.Errorf("unexpected error in monitor tick: %v", err)
			if !l.Settings.ContinueOnTickError {
				logrus.Error("aborting monitor loop")
				return exitcode.Error
			}
			delay := bo.NextBackOff()
			logrus.Infof("continuing after %s", delay.Round(time.Millisecond))
			if !sleep(ctx, delay) {
				return exitcode.Interrupted
			}
			continue
		}
		bo.Reset()

		if terminal {
			logrus.Warn("stopping inactivity monitor because threshold reached")
			return exitcode.ThresholdReached
		}

		if !sleep(ctx, l.PollInterval) {
			logrus.Info("monitor interrupted")
			return exitcode.Interrupted
		}
	}
}

// notifyOnStart dispatches a startup notification if enabled in settings.
func (l *Loop) notifyOnStart(kind string, st *state.ActivityState) {
	if !l.Settings.SendMonitoringOnStart {
		logrus.Info("startup monitoring email is disabled")
		return
	}
	l.Gateway.Dispatch(kind, st)
}

// tick runs one sample→merge→evaluate→persist cycle. A panic inside the
// tick is converted to an error so the loop's error policy applies.
func (l *Loop) tick(ctx context.Context) (terminal bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tick panic: %v", r)
		}
	}()

	now := l.Now()
	logrus.Info("------------- loop tick -------------")

	st := l.Store.Load()
	sample := l.Sampler.Sample(ctx)
	activity.Merge(st, sample)

	levels := threshold.Levels{
		At30: l.Settings.MonitoringAt30,
		At60: l.Settings.MonitoringAt60,
		At90: l.Settings.MonitoringAt90,
	}
	for _, kind := range threshold.Evaluate(st, now, l.Config.TimeoutMinutes, levels) {
		l.Gateway.Dispatch(kind, st)
	}

	l.evaluateWeekly(st, now)

	if err := l.Store.Save(st); err != nil {
		return false, fmt.Errorf("persist state: %w", err)
	}

	return st.ThresholdReached, nil
}

// evaluateWeekly fires the heartbeat when due. The sent date is recorded
// on crossing, not on confirmed delivery, matching the threshold latch
// rule.
func (l *Loop) evaluateWeekly(st *state.ActivityState, now time.Time) {
	if !l.Settings.WeeklyEnabled {
		logrus.Debug("weekly monitoring disabled")
		return
	}

	if !weekly.ShouldSend(now, l.Settings.WeeklyDay, l.Settings.WeeklyHour, st.LastWeeklySentDate) {
		logrus.Debug("weekly monitoring not due")
		return
	}

	logrus.Info("weekly monitoring email is due")
	l.Gateway.Dispatch(notification.KindWeekly, st)
	weekly.MarkSent(st, now)
}

// sleep waits for d or context cancellation; false means canceled.
func sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
