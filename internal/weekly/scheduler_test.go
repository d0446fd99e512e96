package weekly_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/CodexForgeBR/inactivity-monitor/internal/state"
	"github.com/CodexForgeBR/inactivity-monitor/internal/weekly"
)

// 2026-08-31 is a Monday.
var monday14h = time.Date(2026, 8, 31, 14, 0, 0, 0, time.UTC)

const mondayIndex = 1

func TestShouldSendOnConfiguredDayAndHour(t *testing.T) {
	assert.True(t, weekly.ShouldSend(monday14h, mondayIndex, 12, ""))
}

func TestShouldSendRequiresConfiguredWeekday(t *testing.T) {
	tuesday := monday14h.AddDate(0, 0, 1)
	assert.False(t, weekly.ShouldSend(tuesday, mondayIndex, 12, ""))
}

func TestShouldSendWaitsForConfiguredHour(t *testing.T) {
	morning := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	assert.False(t, weekly.ShouldSend(morning, mondayIndex, 12, ""))

	noon := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	assert.True(t, weekly.ShouldSend(noon, mondayIndex, 12, ""))
}

func TestShouldSendDedupsByDate(t *testing.T) {
	st := state.NewActivityState()
	weekly.MarkSent(st, monday14h)

	// Later the same day: already sent.
	evening := time.Date(2026, 8, 31, 20, 0, 0, 0, time.UTC)
	assert.False(t, weekly.ShouldSend(evening, mondayIndex, 12, st.LastWeeklySentDate))

	// Next week's Monday is a different date: due again.
	nextMonday := monday14h.AddDate(0, 0, 7)
	assert.True(t, weekly.ShouldSend(nextMonday, mondayIndex, 12, st.LastWeeklySentDate))
}

func TestMissedWindowCaughtLaterSameDay(t *testing.T) {
	// No tick happened at noon; a 23:50 tick still sends because the
	// dedup key is the date, not the hour.
	lateNight := time.Date(2026, 8, 31, 23, 50, 0, 0, time.UTC)
	assert.True(t, weekly.ShouldSend(lateNight, mondayIndex, 12, "2026-08-24"))
}

func TestMarkSentStoresCalendarDate(t *testing.T) {
	st := state.NewActivityState()
	weekly.MarkSent(st, monday14h)
	assert.Equal(t, "2026-08-31", st.LastWeeklySentDate)
}
