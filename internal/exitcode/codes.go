// Package exitcode defines named exit codes for the inactivity monitor.
//
// Each code maps a termination condition to a numeric value recognized by
// the systemd unit and by shell scripts.
package exitcode

// Exit code constants.
const (
	Success          = 0   // Clean exit
	Error            = 1   // Misconfiguration or fatal runtime failure
	ThresholdReached = 2   // Monitoring ended because the terminal threshold fired
	Disabled         = 3   // Service is administratively disabled
	Interrupted      = 130 // SIGINT/SIGTERM received
)

// Name returns the human-readable name for the given exit code.
// Unknown codes return "unknown".
func Name(code int) string {
	switch code {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case ThresholdReached:
		return "ThresholdReached"
	case Disabled:
		return "Disabled"
	case Interrupted:
		return "Interrupted"
	default:
		return "unknown"
	}
}
