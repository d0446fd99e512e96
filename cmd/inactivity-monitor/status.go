package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/inactivity-monitor/internal/banner"
	"github.com/CodexForgeBR/inactivity-monitor/internal/config"
	"github.com/CodexForgeBR/inactivity-monitor/internal/control"
	"github.com/CodexForgeBR/inactivity-monitor/internal/logging"
	"github.com/CodexForgeBR/inactivity-monitor/internal/paths"
	"github.com/CodexForgeBR/inactivity-monitor/internal/state"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the persisted monitoring state",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}
}

func runStatus() error {
	p, err := paths.Load()
	if err != nil {
		return fmt.Errorf("resolve paths: %w", err)
	}

	st := state.NewStore(p.StateFile).Load()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown-host"
	}
	banner.PrintStatusHeader(hostname, p.StateFile)

	switch {
	case st.ThresholdReached:
		banner.PrintThresholdReachedBanner()
	case st.ServiceDisabled:
		banner.PrintDisabledBanner()
	default:
		banner.PrintActiveBanner()
	}

	printTimestamp := func(label string, ts int64) {
		if ts == 0 {
			logging.Info(label + ": never observed")
			return
		}
		logging.Info(fmt.Sprintf("%s: %s", label, time.Unix(ts, 0).Format("2006-01-02 15:04:05")))
	}
	printTimestamp("Last login", st.LastLoginTimestamp)
	printTimestamp("Last input", st.LastInputTimestamp)

	if last := st.LastActivity(); last > 0 {
		idle := time.Since(time.Unix(last, 0))
		if idle < 0 {
			idle = 0
		}
		logging.Info("Inactivity: " + logging.FormatDuration(int64(idle.Seconds())))

		// The config may be unreadable for an unprivileged caller; the
		// timeout context is then simply omitted.
		if cfg, err := config.Load(p.ConfigFile, control.NewEnvSecretStore()); err == nil && cfg.TimeoutMinutes > 0 {
			pct := idle.Minutes() / float64(cfg.TimeoutMinutes) * 100
			logging.Info(fmt.Sprintf("Timeout: %d minutes (%.0f%% elapsed)", cfg.TimeoutMinutes, pct))
		}
	}

	flag := func(name string, v bool) {
		if v {
			logging.Warn(name + ": sent")
		} else {
			logging.Info(name + ": not sent")
		}
	}
	flag("30% notification", st.Threshold30Sent)
	flag("60% notification", st.Threshold60Sent)
	flag("90% notification", st.Threshold90Sent)

	if st.LastWeeklySentDate != "" {
		logging.Info("Last weekly heartbeat: " + st.LastWeeklySentDate)
	}

	return nil
}
