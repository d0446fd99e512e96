// Package settings holds the optional monitoring preferences.
//
// Unlike the main configuration, settings are not required: a missing
// file yields the defaults, and unknown keys are ignored. Keys present in
// the file are merged over the defaults.
package settings

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/CodexForgeBR/inactivity-monitor/internal/config"
)

// Settings are the user-tunable monitoring options.
type Settings struct {
	EnableLogs            bool   `json:"enable_logs"`
	SendMonitoringOnStart bool   `json:"send_monitoring_on_start"`
	MonitoringSender      string `json:"monitoring_sender"`

	MonitoringAt30 bool `json:"monitoring_at_30"`
	MonitoringAt60 bool `json:"monitoring_at_60"`
	MonitoringAt90 bool `json:"monitoring_at_90"`

	WeeklyEnabled bool `json:"monitoring_weekly_enabled"`
	WeeklyDay     int  `json:"monitoring_weekly_day"`
	WeeklyHour    int  `json:"monitoring_weekly_hour"`

	// ContinueOnTickError keeps the monitoring loop alive across
	// unexpected tick failures, retrying with backoff. Disabling it makes
	// any tick error fatal.
	ContinueOnTickError bool `json:"continue_on_tick_error"`
}

// Default returns the settings used when no file exists.
func Default() *Settings {
	return &Settings{
		WeeklyHour:          12,
		ContinueOnTickError: true,
	}
}

// Load reads the settings file, merging file values over defaults.
// A missing file is not an error; a malformed one is.
func Load(path string) (*Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings file: %w", err)
	}

	return s, nil
}

// Validate checks ranges and the optional monitoring sender address.
func (s *Settings) Validate() error {
	if s.WeeklyDay < 0 || s.WeeklyDay > 6 {
		return fmt.Errorf("monitoring_weekly_day must be between 0 and 6, got %d", s.WeeklyDay)
	}
	if s.WeeklyHour < 0 || s.WeeklyHour > 23 {
		return fmt.Errorf("monitoring_weekly_hour must be between 0 and 23, got %d", s.WeeklyHour)
	}
	if s.MonitoringSender != "" {
		if err := config.ValidateAddress(s.MonitoringSender); err != nil {
			return fmt.Errorf("monitoring_sender: %w", err)
		}
	}
	return nil
}
