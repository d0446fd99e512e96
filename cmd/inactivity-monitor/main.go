package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CodexForgeBR/inactivity-monitor/internal/cli"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "inactivity-monitor",
		Short:   "Inactivity threshold monitor",
		Long:    "Inactivity Monitor watches login and input activity on this host and sends escalating email notifications as the configured inactivity timeout approaches.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),

		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newStatusCmd(),
		newResetCmd(),
		newHistoryCmd(),
		newCheckCmd(),
		newSendTestCmd(),
	)

	// Set custom help template
	cli.SetCustomHelp(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
