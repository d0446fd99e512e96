package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/inactivity-monitor/internal/config"
	"github.com/CodexForgeBR/inactivity-monitor/internal/control"
	"github.com/CodexForgeBR/inactivity-monitor/internal/logging"
	"github.com/CodexForgeBR/inactivity-monitor/internal/paths"
	"github.com/CodexForgeBR/inactivity-monitor/internal/probe"
	"github.com/CodexForgeBR/inactivity-monitor/internal/settings"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate configuration and probe availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd)
		},
	}
}

// runCheck validates everything the service would validate at startup,
// plus a live read of both activity probes. It reports problems but only
// configuration errors make it fail.
func runCheck(cmd *cobra.Command) error {
	p, err := paths.Load()
	if err != nil {
		return fmt.Errorf("resolve paths: %w", err)
	}

	cfg, err := config.Load(p.ConfigFile, control.NewEnvSecretStore())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logging.Success(fmt.Sprintf("Config OK: timeout %d minutes, %d recipient(s)",
		cfg.TimeoutMinutes, len(cfg.Email.To)))

	set, err := settings.Load(p.SettingsFile)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if err := set.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	logging.Success("Settings OK")

	sample := probe.NewSystemSampler().Sample(cmd.Context())

	if sample.LoginTime.IsZero() {
		logging.Warn("Login probe: no session start observed (who unavailable?)")
	} else {
		logging.Success(fmt.Sprintf("Login probe: last login %s, session active: %v",
			sample.LoginTime.Format(time.DateTime), sample.SessionActive))
	}

	if sample.InputTime.IsZero() {
		logging.Warn("Input probe: idle time unavailable (no X11 display?)")
	} else {
		logging.Success("Input probe: last input " + sample.InputTime.Format(time.DateTime))
	}

	return nil
}
