// Package control holds the narrow collaborator boundaries the monitor
// core never crosses itself: secret decryption and service lifecycle.
package control

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// ServiceController manages the background service unit.
type ServiceController interface {
	Restart(ctx context.Context) error
	Stop(ctx context.Context) error
}

// SystemdController drives a systemd unit via systemctl.
type SystemdController struct {
	Unit string
}

// NewSystemdController returns a controller for the monitor's unit.
func NewSystemdController() *SystemdController {
	return &SystemdController{Unit: "inactivity-monitor.service"}
}

// Restart restarts the unit.
func (c *SystemdController) Restart(ctx context.Context) error {
	return c.systemctl(ctx, "restart")
}

// Stop stops the unit.
func (c *SystemdController) Stop(ctx context.Context) error {
	return c.systemctl(ctx, "stop")
}

func (c *SystemdController) systemctl(ctx context.Context, verb string) error {
	out, err := exec.CommandContext(ctx, "systemctl", verb, c.Unit).CombinedOutput()
	if err != nil {
		return fmt.Errorf("systemctl %s %s: %w: %s", verb, c.Unit, err, out)
	}
	return nil
}

// EnvSecretStore resolves the SMTP password from the environment when
// set, falling back to the stored value unchanged. Encryption-at-rest is
// handled by the privileged settings helper, not by the monitor.
type EnvSecretStore struct {
	Var string
}

// NewEnvSecretStore returns the default secret store.
func NewEnvSecretStore() *EnvSecretStore {
	return &EnvSecretStore{Var: "INACTIVITY_MONITOR_SMTP_PASS"}
}

// Decrypt implements config.SecretStore.
func (s *EnvSecretStore) Decrypt(stored string) (string, error) {
	if v := os.Getenv(s.Var); v != "" {
		return v, nil
	}
	return stored, nil
}
