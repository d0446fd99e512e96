package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/inactivity-monitor/internal/config"
	"github.com/CodexForgeBR/inactivity-monitor/internal/control"
	"github.com/CodexForgeBR/inactivity-monitor/internal/history"
	"github.com/CodexForgeBR/inactivity-monitor/internal/logging"
	"github.com/CodexForgeBR/inactivity-monitor/internal/mail"
	"github.com/CodexForgeBR/inactivity-monitor/internal/monitor"
	"github.com/CodexForgeBR/inactivity-monitor/internal/notification"
	"github.com/CodexForgeBR/inactivity-monitor/internal/paths"
	"github.com/CodexForgeBR/inactivity-monitor/internal/probe"
	"github.com/CodexForgeBR/inactivity-monitor/internal/settings"
	sighandler "github.com/CodexForgeBR/inactivity-monitor/internal/signal"
	"github.com/CodexForgeBR/inactivity-monitor/internal/state"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the monitoring loop (the systemd service entry point)",
		RunE: func(cmd *cobra.Command, args []string) error {
			os.Exit(runService())
			return nil // unreachable
		},
	}
}

// runService wires the full service and returns its exit code.
//
// Configuration errors are fatal: a monitor that cannot notify anyone
// must not pretend to watch. Everything after that degrades instead.
func runService() int {
	p, err := paths.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve paths: %v\n", err)
		return 1
	}

	set, err := settings.Load(p.SettingsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load settings: %v\n", err)
		return 1
	}
	if err := set.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid settings: %v\n", err)
		return 1
	}

	logging.ConfigureService(p.LogFile, set.EnableLogs)

	cfg, err := config.Load(p.ConfigFile, control.NewEnvSecretStore())
	if err != nil {
		logrus.Errorf("load config: %v", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		logrus.Errorf("invalid config: %v", err)
		return 1
	}

	// The journal is diagnostic; a failure to open it never blocks the
	// monitor.
	var opts []notification.Option
	journal, err := history.Open(p.HistoryDB)
	if err != nil {
		logrus.Warnf("notification journal unavailable: %v", err)
	} else {
		defer journal.Close()
		opts = append(opts, notification.WithJournal(journal))
	}

	gateway := notification.NewGateway(mail.NewSMTPMailer(cfg.Email), cfg, set.MonitoringSender, opts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sighandler.SetupSignalHandler(ctx, cancel, func() {
		logrus.Warn("interrupt received, shutting down")
	})

	loop := monitor.New(
		state.NewStore(p.StateFile),
		probe.NewSystemSampler(),
		gateway,
		cfg,
		set,
		p.PollInterval,
	)

	return loop.Run(ctx)
}
