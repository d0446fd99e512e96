// Package activity merges sampled signals into the persisted watermarks.
package activity

import (
	"github.com/sirupsen/logrus"

	"github.com/CodexForgeBR/inactivity-monitor/internal/probe"
	"github.com/CodexForgeBR/inactivity-monitor/internal/state"
)

// Merge folds one sample into the state's watermarks. It is the only
// writer of the two timestamp fields and never moves either backwards.
//
// The login watermark advances whenever a newer login is observed. The
// input watermark advances only while a session is active: an idle
// reading from a stale or disconnected session must not count as
// activity.
func Merge(st *state.ActivityState, sample probe.Sample) {
	if !sample.LoginTime.IsZero() {
		if ts := sample.LoginTime.Unix(); ts > st.LastLoginTimestamp {
			logrus.Infof("new login watermark: %d", ts)
			st.LastLoginTimestamp = ts
		}
	}

	if !sample.SessionActive {
		if !sample.InputTime.IsZero() {
			logrus.Debug("no active session, ignoring input time")
		}
		return
	}

	if !sample.InputTime.IsZero() {
		if ts := sample.InputTime.Unix(); ts > st.LastInputTimestamp {
			logrus.Infof("new input watermark: %d", ts)
			st.LastInputTimestamp = ts
		}
	}
}
