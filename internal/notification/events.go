package notification

import (
	"fmt"
	"time"

	"github.com/CodexForgeBR/inactivity-monitor/internal/config"
	"github.com/CodexForgeBR/inactivity-monitor/internal/state"
)

// Notification kinds. Each maps to one outbound message class.
const (
	KindStart         = "start"
	KindStartDisabled = "start_disabled"
	KindStartReached  = "start_already_reached"
	KindWeekly        = "weekly"
	KindThreshold30   = "threshold_30"
	KindThreshold60   = "threshold_60"
	KindThreshold90   = "threshold_90"
	// Terminal pair: the alert to the configured recipients and the copy
	// to the monitoring address.
	KindFinalRecipients = "final_recipients"
	KindFinalMonitoring = "final_monitoring"
	// KindTest verifies the SMTP transport from the send-test subcommand.
	KindTest = "test"
)

const subjectPrefix = "[Inactivity Monitor]"

// Subject returns the subject line for the given event kind.
func Subject(kind, hostname string) string {
	switch kind {
	case KindStart:
		return fmt.Sprintf("%s[%s] Monitoring started", subjectPrefix, hostname)
	case KindStartDisabled:
		return fmt.Sprintf("%s[%s] Service started while disabled", subjectPrefix, hostname)
	case KindStartReached:
		return fmt.Sprintf("%s[%s] Service started, threshold already reached", subjectPrefix, hostname)
	case KindWeekly:
		return fmt.Sprintf("%s[%s] Weekly heartbeat", subjectPrefix, hostname)
	case KindThreshold30:
		return fmt.Sprintf("%s[%s] 30%% of inactivity timeout reached", subjectPrefix, hostname)
	case KindThreshold60:
		return fmt.Sprintf("%s[%s] 60%% of inactivity timeout reached", subjectPrefix, hostname)
	case KindThreshold90:
		return fmt.Sprintf("%s[%s] 90%% of inactivity timeout reached", subjectPrefix, hostname)
	case KindFinalRecipients:
		return fmt.Sprintf("%s[%s] ALERT: inactivity threshold reached", subjectPrefix, hostname)
	case KindFinalMonitoring:
		return fmt.Sprintf("%s[%s] Inactivity threshold reached, monitoring stopped", subjectPrefix, hostname)
	case KindTest:
		return fmt.Sprintf("%s[%s] Test email", subjectPrefix, hostname)
	default:
		return fmt.Sprintf("%s[%s] %s", subjectPrefix, hostname, kind)
	}
}

// Body renders the message body for an event. Monitoring messages carry
// the watermark context; the final alert carries the configured message.
func Body(kind string, cfg *config.Config, st *state.ActivityState, now time.Time) string {
	switch kind {
	case KindFinalRecipients:
		return cfg.Message
	case KindStart:
		return "The inactivity monitor started and is active.\n\n" + activitySummary(cfg, st, now)
	case KindStartDisabled:
		return "The inactivity monitor started but the service is disabled. No monitoring will occur until it is re-enabled."
	case KindStartReached:
		return "The inactivity monitor started, but the inactivity threshold was already reached. Monitoring will not resume until the state is reset."
	case KindWeekly:
		return "Weekly heartbeat: the inactivity monitor is running.\n\n" + activitySummary(cfg, st, now)
	case KindThreshold30, KindThreshold60, KindThreshold90:
		return "Inactivity is accumulating on the monitored host.\n\n" + activitySummary(cfg, st, now)
	case KindFinalMonitoring:
		return "The inactivity threshold was reached and the final alert was dispatched to the configured recipients. Monitoring has stopped.\n\n" + activitySummary(cfg, st, now)
	case KindTest:
		return "This is a test email from the inactivity monitor. The SMTP transport is working.\n\n" + activitySummary(cfg, st, now)
	default:
		return activitySummary(cfg, st, now)
	}
}

// activitySummary renders the watermarks and the measured inactivity.
func activitySummary(cfg *config.Config, st *state.ActivityState, now time.Time) string {
	format := func(ts int64) string {
		if ts == 0 {
			return "never observed"
		}
		return time.Unix(ts, 0).Format("2006-01-02 15:04:05")
	}

	summary := fmt.Sprintf("Last login:  %s\nLast input:  %s\n",
		format(st.LastLoginTimestamp), format(st.LastInputTimestamp))

	if last := st.LastActivity(); last > 0 {
		minutes := now.Sub(time.Unix(last, 0)).Minutes()
		if minutes < 0 {
			minutes = 0
		}
		summary += fmt.Sprintf("Inactivity:  %.0f of %d minutes\n", minutes, cfg.TimeoutMinutes)
	}

	return summary
}
