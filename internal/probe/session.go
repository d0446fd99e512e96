package probe

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// probeTimeout bounds every external probe invocation so a wedged utility
// cannot stall a tick.
const probeTimeout = 5 * time.Second

// WhoProbe reads the session pool from who(1). Any listed entry counts as
// an active session; the newest session start is the login signal.
type WhoProbe struct {
	now func() time.Time
}

// NewWhoProbe returns a session probe backed by who(1).
func NewWhoProbe() *WhoProbe {
	return &WhoProbe{now: time.Now}
}

// Snapshot runs who(1) and parses its output. On any failure both values
// degrade to absent/inactive.
func (p *WhoProbe) Snapshot(ctx context.Context) (time.Time, bool) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "who").Output()
	if err != nil {
		logrus.Debugf("session probe unavailable: %v", err)
		return time.Time{}, false
	}

	return parseWho(string(out), p.now().Location())
}

// parseWho extracts the latest session start from who(1) output.
// Lines look like:
//
//	alice  tty7         2026-08-31 09:12 (:0)
func parseWho(output string, loc *time.Location) (time.Time, bool) {
	var latest time.Time
	active := false

	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		active = true

		started, err := time.ParseInLocation("2006-01-02 15:04", fields[2]+" "+fields[3], loc)
		if err != nil {
			continue
		}
		if started.After(latest) {
			latest = started
		}
	}

	return latest, active
}
