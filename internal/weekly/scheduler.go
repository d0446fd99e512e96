// Package weekly gates the recurring heartbeat notification.
//
// The heartbeat is independent of inactivity: it fires on the configured
// weekday at or after the configured hour, at most once per calendar
// date. Using the date as the dedup key means a tick missed during the
// exact hour is caught by any later tick before midnight.
package weekly

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/CodexForgeBR/inactivity-monitor/internal/state"
)

// DateLayout is the calendar-date form stored in the state record.
const DateLayout = "2006-01-02"

// ShouldSend reports whether the heartbeat is due at now. weekday uses
// the time.Weekday numbering (0 = Sunday).
func ShouldSend(now time.Time, weekday int, hour int, lastSentDate string) bool {
	nowDate := now.Format(DateLayout)

	logrus.Debugf("weekly check: day=%d/%d hour=%d/%d lastSent=%q today=%s",
		int(now.Weekday()), weekday, now.Hour(), hour, lastSentDate, nowDate)

	return int(now.Weekday()) == weekday &&
		now.Hour() >= hour &&
		lastSentDate != nowDate
}

// MarkSent records today as the last heartbeat date.
func MarkSent(st *state.ActivityState, now time.Time) {
	st.LastWeeklySentDate = now.Format(DateLayout)
}
