// Package probe samples the two raw activity signals: when someone last
// logged in, and when the keyboard or mouse was last touched.
//
// Probes degrade instead of failing: a signal that cannot be read this
// tick is reported as absent, never as an error to the caller, and an
// absent input reading is never interpreted as "idle".
package probe

import (
	"context"
	"time"
)

// Sample is one tick's view of the host's activity signals. A zero
// LoginTime or InputTime means the signal was unavailable.
type Sample struct {
	LoginTime     time.Time
	InputTime     time.Time
	SessionActive bool
}

// Sampler produces one Sample per tick.
type Sampler interface {
	Sample(ctx context.Context) Sample
}

// SessionProbe reports the login-session signal.
type SessionProbe interface {
	// Snapshot returns the most recent session start time (zero if
	// unknown) and whether any session is currently active.
	Snapshot(ctx context.Context) (time.Time, bool)
}

// InputProbe reports the last keyboard/mouse input time.
type InputProbe interface {
	// LastInput returns the last input time. ok is false when the idle
	// source is unavailable, which must not be treated as idle.
	LastInput(ctx context.Context) (time.Time, bool)
}

// SystemSampler combines the session and input probes.
type SystemSampler struct {
	Sessions SessionProbe
	Input    InputProbe
}

// NewSystemSampler builds the default sampler for this host.
func NewSystemSampler() *SystemSampler {
	return &SystemSampler{
		Sessions: NewWhoProbe(),
		Input:    NewX11InputProbe(),
	}
}

// Sample reads both signals. Each probe call is bounded; a failed probe
// leaves its part of the sample absent.
func (s *SystemSampler) Sample(ctx context.Context) Sample {
	var out Sample
	out.LoginTime, out.SessionActive = s.Sessions.Snapshot(ctx)
	out.InputTime, _ = s.Input.LastInput(ctx)
	return out
}
