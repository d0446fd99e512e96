// Package paths resolves the file locations used by the inactivity monitor.
//
// Every location has a fixed system default matching the installed service
// layout and can be overridden through an environment variable, which is how
// tests and non-root development runs redirect the monitor to a scratch
// directory. A .env file in the working directory is honored when present.
package paths

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Paths holds the resolved locations of every file the monitor touches,
// plus the poll cadence of the monitoring loop.
type Paths struct {
	ConfigFile   string        `env:"INACTIVITY_MONITOR_CONFIG" envDefault:"/etc/inactivity-monitor/config.json"`
	SettingsFile string        `env:"INACTIVITY_MONITOR_SETTINGS" envDefault:"/etc/inactivity-monitor/settings.json"`
	StateFile    string        `env:"INACTIVITY_MONITOR_STATE" envDefault:"/var/lib/inactivity-monitor/state.json"`
	HistoryDB    string        `env:"INACTIVITY_MONITOR_HISTORY_DB" envDefault:"/var/lib/inactivity-monitor/history.db"`
	LogFile      string        `env:"INACTIVITY_MONITOR_LOG" envDefault:"/var/log/inactivity-monitor/service.log"`
	PollInterval time.Duration `env:"INACTIVITY_MONITOR_POLL_INTERVAL" envDefault:"30s"`
}

// Load resolves all paths from defaults and environment overrides.
// A missing .env file is not an error.
func Load() (*Paths, error) {
	_ = godotenv.Load()

	p, err := env.ParseAs[Paths]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if p.PollInterval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive, got %v", p.PollInterval)
	}

	return &p, nil
}
