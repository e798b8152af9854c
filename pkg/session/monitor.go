package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/aussiebroadwan/matchday/pkg/authsdk"
	"github.com/aussiebroadwan/matchday/pkg/cryptox"
	"github.com/aussiebroadwan/matchday/pkg/jwtx"
	"github.com/aussiebroadwan/matchday/pkg/slogx"
)

// DefaultRefreshLead is how long before expiry a token is renewed.
const DefaultRefreshLead = 60 * time.Second

// State is where the Monitor is for the token it last observed.
type State int

const (
	// StateIdle means there is no token and no timer.
	StateIdle State = iota
	// StateArmed means a refresh is scheduled for Deadline.
	StateArmed
	// StateRefreshing means a refresh has been requested and the Monitor
	// is waiting for the next Observe.
	StateRefreshing
	// StateLoggedOut means the token could not be decoded and logout was
	// requested.
	StateLoggedOut
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateRefreshing:
		return "refreshing"
	case StateLoggedOut:
		return "logged_out"
	default:
		return "unknown"
	}
}

// MonitorHooks are called from their own goroutine, never while the
// Monitor holds its lock. Each receives the token it was raised for so
// the receiver can ignore stale calls.
type MonitorHooks struct {
	// RefreshDue is called once per observed token when it enters the
	// refresh window or is found already expired.
	RefreshDue func(token string)

	// DecodeFailed is called when an observed token cannot be decoded.
	DecodeFailed func(token string, err error)
}

// Monitor keeps at most one refresh timer for the current token. Every
// Observe cancels the previous timer before looking at the new token, so
// a superseded token can never fire.
type Monitor struct {
	clock  clockwork.Clock
	lead   time.Duration
	hooks  MonitorHooks
	logger *slog.Logger

	mu       sync.Mutex
	gen      uint64
	timer    clockwork.Timer
	state    State
	deadline time.Time
	stopped  bool
}

// NewMonitor creates an idle monitor. A zero lead uses DefaultRefreshLead
// and a nil clock uses the real one.
func NewMonitor(clock clockwork.Clock, lead time.Duration, hooks MonitorHooks, logger *slog.Logger) *Monitor {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if lead <= 0 {
		lead = DefaultRefreshLead
	}
	return &Monitor{
		clock:  clock,
		lead:   lead,
		hooks:  hooks,
		logger: slogx.OrDefault(logger),
	}
}

// Observe re-evaluates the state machine for token. An empty token means
// logged out. After Stop it does nothing.
func (m *Monitor) Observe(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped {
		return
	}
	m.cancelLocked()
	gen := m.gen

	if token == "" {
		m.state = StateIdle
		return
	}

	log := m.logger.With("token_fp", cryptox.FingerprintToken(token))

	claims, err := jwtx.DecodeUnverified(token)
	if err != nil {
		m.state = StateLoggedOut
		log.Warn("session token could not be decoded", "err", err)
		go m.decodeFailed(gen, token, &authsdk.TokenDecodeError{Err: err})
		return
	}

	now := m.clock.Now()
	exp := claims.Expiry()
	fireIn := exp.Sub(now) - m.lead

	switch {
	case !exp.After(now):
		m.state = StateRefreshing
		log.Info("session token already expired, refreshing", "expired_for", now.Sub(exp))
		go m.fire(gen, token)
	case fireIn <= 0:
		m.state = StateRefreshing
		log.Info("session token inside refresh window, refreshing", "expires_in", exp.Sub(now))
		go m.fire(gen, token)
	default:
		m.state = StateArmed
		m.deadline = now.Add(fireIn)
		m.timer = m.clock.AfterFunc(fireIn, func() { m.fire(gen, token) })
		log.Debug("session refresh armed", "fire_in", fireIn, "user_id", claims.Subject)
	}
}

// Stop cancels any pending timer and returns to idle for good. Hooks
// already running are not interrupted, but nothing they observe afterwards
// arms a new timer.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	m.cancelLocked()
	m.state = StateIdle
}

// State returns the current state.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Deadline returns when the pending refresh fires, if one is armed.
func (m *Monitor) Deadline() (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateArmed {
		return time.Time{}, false
	}
	return m.deadline, true
}

func (m *Monitor) cancelLocked() {
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.deadline = time.Time{}
}

func (m *Monitor) fire(gen uint64, token string) {
	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		return
	}
	m.state = StateRefreshing
	m.timer = nil
	m.deadline = time.Time{}
	m.mu.Unlock()

	if m.hooks.RefreshDue != nil {
		m.hooks.RefreshDue(token)
	}
}

func (m *Monitor) decodeFailed(gen uint64, token string, err error) {
	m.mu.Lock()
	current := gen == m.gen
	m.mu.Unlock()
	if !current {
		return
	}

	if m.hooks.DecodeFailed != nil {
		m.hooks.DecodeFailed(token, err)
	}
}
