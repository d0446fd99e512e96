package cli_test

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/inactivity-monitor/internal/cli"
)

func TestSetCustomHelp(t *testing.T) {
	cmd := &cobra.Command{Use: "inactivity-monitor"}
	cli.SetCustomHelp(cmd)

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "inactivity-monitor - Inactivity threshold monitor")
	assert.Contains(t, out, "COMMANDS")
	assert.Contains(t, out, "run")
	assert.Contains(t, out, "ThresholdReached")
	assert.Contains(t, out, "INACTIVITY_MONITOR_STATE")
}
