package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/inactivity-monitor/internal/config"
	"github.com/CodexForgeBR/inactivity-monitor/internal/control"
	"github.com/CodexForgeBR/inactivity-monitor/internal/logging"
	"github.com/CodexForgeBR/inactivity-monitor/internal/mail"
	"github.com/CodexForgeBR/inactivity-monitor/internal/notification"
	"github.com/CodexForgeBR/inactivity-monitor/internal/paths"
	"github.com/CodexForgeBR/inactivity-monitor/internal/settings"
	"github.com/CodexForgeBR/inactivity-monitor/internal/state"
)

func newSendTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send-test",
		Short: "Send a test email through the configured SMTP transport",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSendTest()
		},
	}
}

func runSendTest() error {
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

	set, err := settings.Load(p.SettingsFile)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	gateway := notification.NewGateway(mail.NewSMTPMailer(cfg.Email), cfg, set.MonitoringSender)
	st := state.NewStore(p.StateFile).Load()

	if !gateway.Dispatch(notification.KindTest, st) {
		return fmt.Errorf("test email delivery failed")
	}

	logging.Success("Test email sent")
	return nil
}
