package probe

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/screensaver"
	"github.com/jezek/xgb/xproto"
	"github.com/sirupsen/logrus"
)

// X11InputProbe derives the last input time from the X server's idle
// counter. The MIT-SCREEN-SAVER extension is queried over a cached
// connection; when that fails it shells out to xprintidle. Neither source
// being available means the signal is absent.
type X11InputProbe struct {
	mu   sync.Mutex
	conn *xgb.Conn
	root xproto.Window

	hasXprintidle bool
	now           func() time.Time
}

// NewX11InputProbe returns an input probe for the current display.
func NewX11InputProbe() *X11InputProbe {
	_, err := exec.LookPath("xprintidle")
	return &X11InputProbe{
		hasXprintidle: err == nil,
		now:           time.Now,
	}
}

// LastInput returns the time of the most recent keyboard/mouse input.
func (p *X11InputProbe) LastInput(ctx context.Context) (time.Time, bool) {
	if idle, err := p.idleOverX(); err == nil {
		return p.now().Add(-idle), true
	} else {
		logrus.Debugf("screensaver idle query failed: %v", err)
	}

	if idle, err := p.idleOverExec(ctx); err == nil {
		return p.now().Add(-idle), true
	} else {
		logrus.Debugf("xprintidle unavailable: %v", err)
	}

	return time.Time{}, false
}

// idleOverX queries MIT-SCREEN-SAVER for milliseconds since last input.
func (p *X11InputProbe) idleOverX() (time.Duration, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		conn, err := xgb.NewConn()
		if err != nil {
			return 0, fmt.Errorf("connect to X server: %w", err)
		}
		if err := screensaver.Init(conn); err != nil {
			conn.Close()
			return 0, fmt.Errorf("init screensaver extension: %w", err)
		}
		p.conn = conn
		p.root = xproto.Setup(conn).DefaultScreen(conn).Root
	}

	reply, err := screensaver.QueryInfo(p.conn, xproto.Drawable(p.root)).Reply()
	if err != nil {
		// Drop the connection so the next tick redials.
		p.conn.Close()
		p.conn = nil
		return 0, fmt.Errorf("query idle info: %w", err)
	}

	return time.Duration(reply.MsSinceUserInput) * time.Millisecond, nil
}

// idleOverExec runs xprintidle, which prints idle milliseconds.
func (p *X11InputProbe) idleOverExec(ctx context.Context) (time.Duration, error) {
	if !p.hasXprintidle {
		return 0, fmt.Errorf("xprintidle not found in PATH")
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "xprintidle").Output()
	if err != nil {
		return 0, fmt.Errorf("run xprintidle: %w", err)
	}

	ms, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse xprintidle output %q: %w", strings.TrimSpace(string(out)), err)
	}

	return time.Duration(ms) * time.Millisecond, nil
}

// Close releases the cached X connection.
func (p *X11InputProbe) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
}
