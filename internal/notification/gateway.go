// Package notification dispatches typed events to the email transport.
//
// Dispatch is fire-and-forget: failures are logged and reported to the
// caller as a boolean, never raised. Latch bookkeeping happens upstream
// on crossing detection, not on confirmed delivery, so a broken transport
// does not cause a resend storm.
package notification

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/CodexForgeBR/inactivity-monitor/internal/config"
	"github.com/CodexForgeBR/inactivity-monitor/internal/history"
	"github.com/CodexForgeBR/inactivity-monitor/internal/state"
)

// Mailer delivers one message. Implementations must honor the context
// deadline.
type Mailer interface {
	Send(ctx context.Context, from string, to []string, subject, body string) error
}

// Gateway routes notification kinds to recipients and hands them to the
// mailer. A nil journal disables event recording.
type Gateway struct {
	mailer   Mailer
	cfg      *config.Config
	set      gatewaySettings
	journal  *history.Repository
	timeout  time.Duration
	hostname string
	now      func() time.Time
}

// gatewaySettings is the slice of the settings record the gateway needs.
type gatewaySettings struct {
	monitoringSender string
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithJournal records every dispatch attempt in the history journal.
func WithJournal(j *history.Repository) Option {
	return func(g *Gateway) { g.journal = j }
}

// WithTimeout bounds each send so one hung delivery cannot stall a tick.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.timeout = d }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

// NewGateway builds a gateway. monitoringSender, when non-empty, receives
// all monitoring-class messages instead of the SMTP user.
func NewGateway(mailer Mailer, cfg *config.Config, monitoringSender string, opts ...Option) *Gateway {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown-host"
	}

	g := &Gateway{
		mailer:   mailer,
		cfg:      cfg,
		set:      gatewaySettings{monitoringSender: monitoringSender},
		timeout:  30 * time.Second,
		hostname: hostname,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Dispatch sends one notification. Returns whether delivery succeeded;
// it never panics and never returns an error to the tick.
func (g *Gateway) Dispatch(kind string, st *state.ActivityState) bool {
	now := g.now()
	to := g.recipients(kind)
	subject := Subject(kind, g.hostname)
	body := Body(kind, g.cfg, st, now)

	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()

	err := g.mailer.Send(ctx, g.cfg.Email.SMTPUser, to, subject, body)
	if err != nil {
		logrus.Errorf("failed to send %s notification to %v: %v", kind, to, err)
	} else {
		logrus.Infof("sent %s notification to %v", kind, to)
	}

	g.record(kind, st, to, subject, now, err == nil)

	return err == nil
}

// recipients routes the event: the final alert goes to the configured
// recipients, everything else to the monitoring address.
func (g *Gateway) recipients(kind string) []string {
	if kind == KindFinalRecipients {
		return g.cfg.Email.To
	}
	if g.set.monitoringSender != "" {
		return []string{g.set.monitoringSender}
	}
	return []string{g.cfg.Email.SMTPUser}
}

// record journals the dispatch attempt, best effort.
func (g *Gateway) record(kind string, st *state.ActivityState, to []string, subject string, now time.Time, success bool) {
	if g.journal == nil {
		return
	}

	var inactivity float64
	if last := st.LastActivity(); last > 0 {
		inactivity = now.Sub(time.Unix(last, 0)).Minutes()
	}

	err := g.journal.Record(&history.Event{
		Kind:              kind,
		Recipients:        history.JoinRecipients(to),
		Subject:           subject,
		Success:           success,
		InactivityMinutes: inactivity,
	})
	if err != nil {
		logrus.Warnf("failed to journal %s notification: %v", kind, err)
	}
}
