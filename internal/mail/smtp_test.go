package mail_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodexForgeBR/inactivity-monitor/internal/config"
	"github.com/CodexForgeBR/inactivity-monitor/internal/mail"
)

func TestBuildMessageHeaders(t *testing.T) {
	msg := string(mail.BuildMessage(
		"monitor@example.com",
		[]string{"a@example.com", "b@example.com"},
		"[Inactivity Monitor] test",
		"line one\nline two",
	))

	assert.True(t, strings.HasPrefix(msg, "From: monitor@example.com\r\n"))
	assert.Contains(t, msg, "To: a@example.com, b@example.com\r\n")
	assert.Contains(t, msg, "Subject: [Inactivity Monitor] test\r\n")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=utf-8\r\n")

	// Body separated from headers by a blank line, newlines normalized.
	parts := strings.SplitN(msg, "\r\n\r\n", 2)
	require.Len(t, parts, 2)
	assert.Equal(t, "line one\r\nline two\r\n", parts[1])
}

func TestNewSMTPMailerFromConfig(t *testing.T) {
	m := mail.NewSMTPMailer(config.EmailConfig{
		SMTPServer: "smtp.example.com",
		SMTPPort:   587,
		SMTPUser:   "monitor@example.com",
		SMTPPass:   "secret",
	})

	assert.Equal(t, "smtp.example.com", m.Host)
	assert.Equal(t, 587, m.Port)
	assert.Equal(t, 10*time.Second, m.DialTimeout)
}

func TestSendHonorsCanceledContext(t *testing.T) {
	m := mail.NewSMTPMailer(config.EmailConfig{
		SMTPServer: "192.0.2.1", // TEST-NET, never routable
		SMTPPort:   587,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Send(ctx, "monitor@example.com", []string{"a@example.com"}, "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial smtp server")
}
