// Package cli provides help text and usage formatting for the
// inactivity-monitor CLI.
package cli

import (
	"github.com/spf13/cobra"
)

const helpTemplate = `inactivity-monitor - Inactivity threshold monitor

USAGE
  inactivity-monitor <command> [flags]

COMMANDS
  run         Run the monitoring loop (the systemd service entry point)
  status      Show the persisted monitoring state
  reset       Clear all notification latches and re-arm the monitor
  history     List recent notification dispatches
  check       Validate configuration and probe availability
  send-test   Send a test email through the configured SMTP transport

FLAGS
  reset:
    --restart                  Restart the systemd service after resetting

  history:
    --limit <int>              Maximum number of events to show (default: 20)

  Help & Version:
    -h, --help                 Show this help text
    --version                  Show version, commit, build date

ENVIRONMENT
  INACTIVITY_MONITOR_CONFIG          Config file (default: /etc/inactivity-monitor/config.json)
  INACTIVITY_MONITOR_SETTINGS        Settings file (default: /etc/inactivity-monitor/settings.json)
  INACTIVITY_MONITOR_STATE           State file (default: /var/lib/inactivity-monitor/state.json)
  INACTIVITY_MONITOR_HISTORY_DB      Notification journal (default: /var/lib/inactivity-monitor/history.db)
  INACTIVITY_MONITOR_LOG             Service log (default: /var/log/inactivity-monitor/service.log)
  INACTIVITY_MONITOR_POLL_INTERVAL   Loop cadence (default: 30s)
  INACTIVITY_MONITOR_SMTP_PASS       Overrides the stored SMTP password

EXIT CODES (run)
  0    Success              Clean exit
  1    Error                Misconfiguration or fatal runtime failure
  2    ThresholdReached     Monitoring ended because the terminal threshold fired
  3    Disabled             Service is administratively disabled
  130  Interrupted          SIGINT or SIGTERM received

EXAMPLES
  # Run the monitor in the foreground
  inactivity-monitor run

  # Inspect the current state
  inactivity-monitor status

  # Re-arm after the threshold fired, restarting the service
  inactivity-monitor reset --restart

  # Verify SMTP delivery end to end
  inactivity-monitor send-test

For more information, see: https://github.com/CodexForgeBR/inactivity-monitor
`

// SetCustomHelp configures the cobra command to use our custom help template.
func SetCustomHelp(cmd *cobra.Command) {
	cmd.SetHelpTemplate(helpTemplate)
}
