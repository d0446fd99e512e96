// Package threshold drives the inactivity latch state machine.
//
// Each evaluation compares the measured inactivity against the 30/60/90
// percent cutoffs and the terminal timeout, updates the latches in the
// state record, and reports which notifications are due this tick. The
// guarantee is at most one notification per level per continuous
// inactivity episode: a latch is set exactly once on crossing and forced
// clear whenever inactivity drops back below the cutoff.
package threshold

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/CodexForgeBR/inactivity-monitor/internal/notification"
	"github.com/CodexForgeBR/inactivity-monitor/internal/state"
)

// Levels carries the per-level enable flags. Disabling a level only
// suppresses its dispatch; latch bookkeeping continues so re-enabling
// mid-episode behaves predictably.
type Levels struct {
	At30 bool
	At60 bool
	At90 bool
}

// Evaluate runs one tick of the latch state machine against st and
// returns the notification kinds due, in escalation order. st is mutated
// in place; the caller persists it.
//
// If no activity has ever been observed, nothing is evaluated. A negative
// inactivity reading (clock skew, backdated watermark) is clamped to zero
// and logged, so a time anomaly can only delay latching, never corrupt it.
func Evaluate(st *state.ActivityState, now time.Time, timeoutMinutes int, levels Levels) []string {
	last := st.LastActivity()
	if last == 0 {
		logrus.Info("no usable activity timestamps yet, skipping threshold evaluation")
		return nil
	}

	inactivity := now.Sub(time.Unix(last, 0)).Minutes()
	if inactivity < 0 {
		logrus.Warnf("clock anomaly: inactivity measured as %.1f minutes, clamping to zero", inactivity)
		inactivity = 0
	}
	logrus.Infof("inactivity: %.1f of %d minutes", inactivity, timeoutMinutes)

	var due []string

	steps := []struct {
		percent int
		enabled bool
		latch   *bool
		kind    string
	}{
		{30, levels.At30, &st.Threshold30Sent, notification.KindThreshold30},
		{60, levels.At60, &st.Threshold60Sent, notification.KindThreshold60},
		{90, levels.At90, &st.Threshold90Sent, notification.KindThreshold90},
	}

	for _, step := range steps {
		cutoff := float64(timeoutMinutes) * float64(step.percent) / 100
		switch {
		case inactivity < cutoff:
			// Episode reset, independent of the enable flag.
			*step.latch = false
			logrus.Debugf("below the %d%% threshold", step.percent)
		case !step.enabled:
			logrus.Debugf("%d%% threshold notification disabled", step.percent)
		case *step.latch:
			logrus.Debugf("%d%% notification already sent this episode", step.percent)
		default:
			logrus.Infof("%d%% threshold reached", step.percent)
			due = append(due, step.kind)
			*step.latch = true
		}
	}

	// Terminal level. The latch is never cleared here: reaching 100% ends
	// the monitored episode.
	if inactivity >= float64(timeoutMinutes) && !st.ThresholdReached {
		logrus.Warn("inactivity threshold reached")
		due = append(due, notification.KindFinalRecipients, notification.KindFinalMonitoring)
		st.ThresholdReached = true
	}

	return due
}
