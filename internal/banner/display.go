// Package banner provides colored banner display functions for the
// inactivity-monitor CLI.
//
// All banner functions write formatted output to stdout with color-coded
// headers and separators. These frame the important state transitions a
// human cares about when inspecting the monitor: active, disabled, and
// threshold reached.
package banner

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold).SprintFunc()
	successColor = color.New(color.FgGreen, color.Bold).SprintFunc()
	errorColor   = color.New(color.FgRed, color.Bold).SprintFunc()
	warnColor    = color.New(color.FgYellow, color.Bold).SprintFunc()
)

const sepLine = "═══════════════════════════════════════════════════"

// PrintStatusHeader displays the status banner with host info.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  inactivity-monitor - Activity Threshold Monitor
//	═══════════════════════════════════════════════════
//	  Host:       workstation
//	  State file: /var/lib/inactivity-monitor/state.json
//	═══════════════════════════════════════════════════
func PrintStatusHeader(hostname string, stateFile string) {
	sep := headerColor(sepLine)
	fmt.Println(sep)
	fmt.Println(headerColor("  inactivity-monitor - Activity Threshold Monitor"))
	fmt.Println(sep)
	fmt.Printf("  Host:       %s\n", hostname)
	fmt.Printf("  State file: %s\n", stateFile)
	fmt.Println(sep)
}

// PrintActiveBanner displays the banner for a healthy, armed monitor.
func PrintActiveBanner() {
	sep := successColor(sepLine)
	fmt.Println(sep)
	fmt.Println(successColor("  ✓ Monitoring is active"))
	fmt.Println(sep)
}

// PrintDisabledBanner displays the banner for an administratively
// disabled monitor.
func PrintDisabledBanner() {
	sep := warnColor(sepLine)
	fmt.Println(sep)
	fmt.Println(warnColor("  ⚠ Service is disabled"))
	fmt.Println("  Run 'inactivity-monitor reset' to re-arm")
	fmt.Println(sep)
}

// PrintThresholdReachedBanner displays the terminal banner.
//
// Example output:
//
//	═══════════════════════════════════════════════════
//	  ✗ THRESHOLD REACHED — monitoring stopped
//	═══════════════════════════════════════════════════
//	  The final alert was dispatched.
//	  Run 'inactivity-monitor reset' to re-arm
//	═══════════════════════════════════════════════════
func PrintThresholdReachedBanner() {
	sep := errorColor(sepLine)
	fmt.Println(sep)
	fmt.Println(errorColor("  ✗ THRESHOLD REACHED — monitoring stopped"))
	fmt.Println(sep)
	fmt.Println("  The final alert was dispatched.")
	fmt.Println("  Run 'inactivity-monitor reset' to re-arm")
	fmt.Println(sep)
}
