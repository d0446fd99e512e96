package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/inactivity-monitor/internal/history"
	"github.com/CodexForgeBR/inactivity-monitor/internal/logging"
	"github.com/CodexForgeBR/inactivity-monitor/internal/paths"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent notification dispatches",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of events to show")
	return cmd
}

func runHistory(limit int) error {
	p, err := paths.Load()
	if err != nil {
		return fmt.Errorf("resolve paths: %w", err)
	}

	journal, err := history.Open(p.HistoryDB)
	if err != nil {
		return fmt.Errorf("open notification journal: %w", err)
	}
	defer journal.Close()

	events, err := journal.Recent(limit)
	if err != nil {
		return fmt.Errorf("read notification journal: %w", err)
	}

	if len(events) == 0 {
		logging.Info("No notifications recorded yet")
		return nil
	}

	for _, e := range events {
		line := fmt.Sprintf("%s  %-22s  to %s",
			e.CreatedAt.Format("2006-01-02 15:04:05"), e.Kind, e.Recipients)
		if e.Success {
			logging.Success(line)
		} else {
			logging.Error(line + "  (delivery failed)")
		}
	}

	return nil
}
