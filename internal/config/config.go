// Package config defines the monitor's main configuration record.
//
// The configuration lives in a root-owned JSON file written by the
// settings editor. It is read-only to the monitor: a missing or invalid
// file is fatal at startup and the loop never starts (the monitor would
// otherwise be unable to notify anyone).
package config

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"os"
)

// Config is the validated main configuration.
type Config struct {
	// TimeoutMinutes defines 100% inactivity. The percentage cutoffs
	// (30/60/90) are derived from it.
	TimeoutMinutes int `json:"timeout_minutes"`

	// Message is the body sent with the final alert.
	Message string `json:"message"`

	Email EmailConfig `json:"email"`
}

// EmailConfig holds the SMTP transport settings and the alert recipients.
type EmailConfig struct {
	To         []string `json:"to"`
	SMTPServer string   `json:"smtp_server"`
	SMTPPort   int      `json:"smtp_port"`
	SMTPUser   string   `json:"smtp_user"`
	SMTPPass   string   `json:"smtp_pass"`
}

// SecretStore decrypts secrets persisted at rest. The monitor never
// handles key material itself; it only consumes decrypted values.
type SecretStore interface {
	Decrypt(encrypted string) (string, error)
}

// Load reads the configuration file and decrypts the SMTP password
// through the given secret store.
func Load(path string, secrets SecretStore) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if cfg.Email.SMTPPass != "" && secrets != nil {
		plain, err := secrets.Decrypt(cfg.Email.SMTPPass)
		if err != nil {
			return nil, fmt.Errorf("decrypt smtp password: %w", err)
		}
		cfg.Email.SMTPPass = plain
	}

	return &cfg, nil
}

// Validate checks required fields, integer ranges, and address syntax for
// the sender and every recipient.
func (c *Config) Validate() error {
	if c.TimeoutMinutes <= 0 {
		return fmt.Errorf("timeout_minutes must be a positive integer, got %d", c.TimeoutMinutes)
	}
	if c.Message == "" {
		return fmt.Errorf("missing required field: message")
	}

	e := c.Email
	if len(e.To) == 0 {
		return fmt.Errorf("missing email field: to")
	}
	if e.SMTPServer == "" {
		return fmt.Errorf("missing email field: smtp_server")
	}
	if e.SMTPPort <= 0 || e.SMTPPort > 65535 {
		return fmt.Errorf("smtp_port must be between 1 and 65535, got %d", e.SMTPPort)
	}
	if e.SMTPUser == "" {
		return fmt.Errorf("missing email field: smtp_user")
	}
	if e.SMTPPass == "" {
		return fmt.Errorf("missing email field: smtp_pass")
	}

	if err := ValidateAddress(e.SMTPUser); err != nil {
		return fmt.Errorf("smtp_user: %w", err)
	}
	for _, addr := range e.To {
		if err := ValidateAddress(addr); err != nil {
			return fmt.Errorf("recipient %q: %w", addr, err)
		}
	}

	return nil
}

// ValidateAddress checks that s is a bare, syntactically valid address.
func ValidateAddress(s string) error {
	parsed, err := mail.ParseAddress(s)
	if err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}
	if parsed.Address != s {
		return fmt.Errorf("invalid email address: %q must be a bare address", s)
	}
	return nil
}
