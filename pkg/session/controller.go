package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/aussiebroadwan/matchday/pkg/authsdk"
	"github.com/aussiebroadwan/matchday/pkg/cryptox"
	"github.com/aussiebroadwan/matchday/pkg/jwtx"
	"github.com/aussiebroadwan/matchday/pkg/slogx"
)

// DefaultRequestTimeout bounds every call to the auth endpoint.
const DefaultRequestTimeout = 15 * time.Second

// ErrSuperseded is returned by Refresh when the session changed while the
// request was in flight. The result was discarded.
var ErrSuperseded = errors.New("session: refresh result superseded")

// Endpoint is the remote auth service. *authsdk.SDKClient implements it.
type Endpoint interface {
	Login(ctx context.Context, req authsdk.LoginRequest) (*authsdk.AuthResponse, error)
	Register(ctx context.Context, req authsdk.RegisterRequest) (*authsdk.AuthResponse, error)
	Refresh(ctx context.Context, token string) (*authsdk.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

var _ Endpoint = (*authsdk.SDKClient)(nil)

// Options tune a Controller. The zero value is usable.
type Options struct {
	Clock          clockwork.Clock
	Logger         *slog.Logger
	RequestTimeout time.Duration
	RefreshLead    time.Duration

	// ServerLogout also revokes the token server-side on Logout. The call
	// runs after local state is gone and its failure is only logged.
	ServerLogout bool
}

// Controller owns the one session slot. Network calls run outside its
// lock; results are applied only if the session they started from is
// still current.
type Controller struct {
	endpoint     Endpoint
	store        *CredentialStore
	monitor      *Monitor
	logger       *slog.Logger
	timeout      time.Duration
	serverLogout bool

	refreshes singleflight.Group
	bg        sync.WaitGroup

	mu      sync.Mutex
	session Session
	subs    map[uint64]*subscriber
	nextSub uint64
	closed  bool
}

func NewController(endpoint Endpoint, store *CredentialStore, opts Options) *Controller {
	logger := slogx.OrDefault(opts.Logger).With("component", "session")
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	c := &Controller{
		endpoint:     endpoint,
		store:        store,
		logger:       logger,
		timeout:      timeout,
		serverLogout: opts.ServerLogout,
		subs:         make(map[uint64]*subscriber),
	}
	c.monitor = NewMonitor(opts.Clock, opts.RefreshLead, MonitorHooks{
		RefreshDue:   c.onRefreshDue,
		DecodeFailed: c.onDecodeFailed,
	}, logger)
	return c
}

// Start restores the persisted session, if any, and hands its token to the
// monitor, which may refresh or end it straight away. It reports whether a
// session was restored.
func (c *Controller) Start(ctx context.Context) bool {
	sess, ok := c.store.Load(ctx)
	if !ok {
		c.logger.Info("no stored session")
		return false
	}

	c.mu.Lock()
	c.session = sess
	c.monitor.Observe(sess.Token)
	c.mu.Unlock()
	c.notify()

	c.logger.Info("session restored", "user_id", sess.User.ID, "token_fp", cryptox.FingerprintToken(sess.Token))
	return true
}

// Current returns the session and whether one exists.
func (c *Controller) Current() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session, !c.session.IsZero()
}

// Monitor exposes the token monitor for inspection.
func (c *Controller) Monitor() *Monitor {
	return c.monitor
}

// Login exchanges credentials for a session. On failure the existing
// session is left as it was.
func (c *Controller) Login(ctx context.Context, email, password string) (Session, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.endpoint.Login(ctx, authsdk.LoginRequest{Email: email, Password: password})
	if err != nil {
		c.logger.Warn("login failed", "err", err)
		return Session{}, fmt.Errorf("login: %w", err)
	}
	return c.install(ctx, "login", resp)
}

// Register creates an account and signs in as it. Same contract as Login.
func (c *Controller) Register(ctx context.Context, req authsdk.RegisterRequest) (Session, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.endpoint.Register(ctx, req)
	if err != nil {
		c.logger.Warn("register failed", "err", err)
		return Session{}, fmt.Errorf("register: %w", err)
	}
	return c.install(ctx, "register", resp)
}

// Refresh renews the current token. It does nothing without a session.
// A failed refresh ends the session and is not retried.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	token := c.session.Token
	c.mu.Unlock()

	if token == "" {
		return nil
	}
	return c.refreshFrom(ctx, token)
}

// Logout ends the session locally. It cannot fail; storage errors are
// logged.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	old := c.session
	c.clearLocked(ctx)
	c.mu.Unlock()

	if old.IsZero() {
		return
	}
	c.notify()
	c.logger.Info("logged out", "user_id", old.User.ID)

	if c.serverLogout {
		c.revoke(ctx, old.Token)
	}
}

// Close stops the monitor and every subscriber and waits for background
// work. The session itself is kept in storage.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	subs := c.subs
	c.subs = make(map[uint64]*subscriber)
	c.mu.Unlock()

	c.monitor.Stop()

	for _, s := range subs {
		s.stop()
	}
	c.bg.Wait()
}

func (c *Controller) refreshFrom(ctx context.Context, token string) error {
	log := c.logger.With("token_fp", cryptox.FingerprintToken(token))

	_, err, _ := c.refreshes.Do(token, func() (any, error) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		resp, err := c.endpoint.Refresh(ctx, token)

		var respErr error
		if err == nil {
			respErr = checkResponse(resp)
		}

		c.mu.Lock()
		if c.session.Token != token {
			c.mu.Unlock()
			log.Debug("discarding refresh result for superseded session")
			return nil, ErrSuperseded
		}

		switch {
		case err != nil:
			c.clearLocked(ctx)
			c.mu.Unlock()
			c.notify()
			log.Warn("refresh failed, session ended", "err", err)
			return nil, fmt.Errorf("refresh: %w", err)
		case respErr != nil:
			c.clearLocked(ctx)
			c.mu.Unlock()
			c.notify()
			log.Warn("refresh response unusable, session ended", "err", respErr)
			return nil, fmt.Errorf("refresh: %w", respErr)
		}

		sess := Session{Token: resp.Token, User: resp.User}
		c.setLocked(ctx, sess)
		c.mu.Unlock()
		c.notify()

		log.Info("session refreshed", "user_id", sess.User.ID, "new_token_fp", cryptox.FingerprintToken(sess.Token))
		return nil, nil
	})
	return err
}

func (c *Controller) install(ctx context.Context, op string, resp *authsdk.AuthResponse) (Session, error) {
	if err := checkResponse(resp); err != nil {
		c.logger.Warn("session response unusable", "op", op, "err", err)
		return Session{}, fmt.Errorf("%s: %w", op, err)
	}

	sess := Session{Token: resp.Token, User: resp.User}

	c.mu.Lock()
	c.setLocked(ctx, sess)
	c.mu.Unlock()
	c.notify()

	c.logger.Info("session started", "op", op, "user_id", sess.User.ID, "token_fp", cryptox.FingerprintToken(sess.Token))
	return sess, nil
}

// checkResponse rejects a session response whose token cannot be decoded
// or that carries no user. A token is never installed without its user.
func checkResponse(resp *authsdk.AuthResponse) error {
	if _, err := jwtx.DecodeUnverified(resp.Token); err != nil {
		return &authsdk.TokenDecodeError{Err: err}
	}
	if resp.User.ID == "" {
		return authsdk.ErrMissingUser
	}
	return nil
}

// setLocked replaces the session, persists it and re-arms the monitor.
func (c *Controller) setLocked(ctx context.Context, sess Session) {
	c.session = sess
	if err := c.store.Save(context.WithoutCancel(ctx), sess); err != nil {
		c.logger.Error("failed to persist session", "err", err)
	}
	c.monitor.Observe(sess.Token)
}

func (c *Controller) clearLocked(ctx context.Context) {
	c.session = Session{}
	c.monitor.Observe("")
	if err := c.store.Clear(context.WithoutCancel(ctx)); err != nil {
		c.logger.Error("failed to clear stored session", "err", err)
	}
}

// track registers background work unless the controller is closed.
func (c *Controller) track() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.bg.Add(1)
	return true
}

func (c *Controller) revoke(ctx context.Context, token string) {
	if !c.track() {
		return
	}
	go func() {
		defer c.bg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()

		if err := c.endpoint.Logout(ctx, token); err != nil {
			c.logger.Warn("server logout failed", "token_fp", cryptox.FingerprintToken(token), "err", err)
		}
	}()
}

func (c *Controller) onRefreshDue(token string) {
	if !c.track() {
		return
	}
	defer c.bg.Done()

	if err := c.refreshFrom(context.Background(), token); err != nil && !errors.Is(err, ErrSuperseded) {
		c.logger.Debug("background refresh ended session", "err", err)
	}
}

func (c *Controller) onDecodeFailed(token string, err error) {
	c.mu.Lock()
	if c.session.Token != token {
		c.mu.Unlock()
		return
	}
	c.clearLocked(context.Background())
	c.mu.Unlock()
	c.notify()

	c.logger.Warn("session ended, token could not be decoded", "err", err)
}
