package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/inactivity-monitor/internal/control"
	"github.com/CodexForgeBR/inactivity-monitor/internal/logging"
	"github.com/CodexForgeBR/inactivity-monitor/internal/paths"
	"github.com/CodexForgeBR/inactivity-monitor/internal/state"
)

func newResetCmd() *cobra.Command {
	var restart bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear all notification latches and re-arm the monitor",
		Long:  "Reset clears the threshold latches (including the terminal one) and the disabled flag, keeping the recorded activity watermarks. Use after manual intervention to let monitoring resume.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(cmd, restart)
		},
	}

	cmd.Flags().BoolVar(&restart, "restart", false, "restart the systemd service after resetting")
	return cmd
}

func runReset(cmd *cobra.Command, restart bool) error {
	p, err := paths.Load()
	if err != nil {
		return fmt.Errorf("resolve paths: %w", err)
	}

	if err := state.NewStore(p.StateFile).ResetFlags(); err != nil {
		return fmt.Errorf("reset state: %w", err)
	}
	logging.Success("Monitoring state reset")

	if restart {
		if err := control.NewSystemdController().Restart(cmd.Context()); err != nil {
			return fmt.Errorf("restart service: %w", err)
		}
		logging.Success("Service restarted")
	}

	return nil
}
