package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/matchday/pkg/authsdk"
	"github.com/aussiebroadwan/matchday/pkg/kv"
	"github.com/aussiebroadwan/matchday/pkg/slogx"
)

// Keys the credentials are stored under.
const (
	TokenKey = "auth_token"
	UserKey  = "auth_user"
)

// Session is the authenticated identity: a signed token and the profile it
// was issued for. A zero Session means logged out.
type Session struct {
	Token string
	User  authsdk.User
}

// IsZero reports whether s holds no token.
func (s Session) IsZero() bool {
	return s.Token == ""
}

// CredentialStore persists a Session as two string values in a kv.Store.
// It does no validation and knows nothing about expiry.
type CredentialStore struct {
	kv     kv.Store
	logger *slog.Logger
}

func NewCredentialStore(store kv.Store, logger *slog.Logger) *CredentialStore {
	return &CredentialStore{kv: store, logger: slogx.OrDefault(logger)}
}

// Save overwrites the stored token and user. If either write fails both
// values are removed, so a token is never left next to another user.
func (s *CredentialStore) Save(ctx context.Context, sess Session) error {
	if sess.IsZero() {
		return errors.New("session: refusing to save an empty session")
	}

	raw, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.kv.Set(ctx, UserKey, string(raw)); err != nil {
		return s.abandon(ctx, fmt.Errorf("save user: %w", err))
	}
	if err := s.kv.Set(ctx, TokenKey, sess.Token); err != nil {
		return s.abandon(ctx, fmt.Errorf("save token: %w", err))
	}
	return nil
}

func (s *CredentialStore) abandon(ctx context.Context, err error) error {
	if cerr := s.Clear(ctx); cerr != nil {
		return errors.Join(err, fmt.Errorf("clear after failed save: %w", cerr))
	}
	return err
}

// Load returns the saved session. Anything missing, unreadable or
// malformed is reported as absent, and malformed leftovers are removed.
func (s *CredentialStore) Load(ctx context.Context) (Session, bool) {
	token, err := s.kv.Get(ctx, TokenKey)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		return Session{}, false
	case errors.Is(err, kv.ErrCorrupt):
		s.discard(ctx, "store is corrupt")
		return Session{}, false
	case err != nil:
		s.logger.Warn("failed to read stored token", "err", err)
		return Session{}, false
	}

	rawUser, err := s.kv.Get(ctx, UserKey)
	switch {
	case errors.Is(err, kv.ErrNotFound):
		s.discard(ctx, "token without user")
		return Session{}, false
	case errors.Is(err, kv.ErrCorrupt):
		s.discard(ctx, "store is corrupt")
		return Session{}, false
	case err != nil:
		s.logger.Warn("failed to read stored user", "err", err)
		return Session{}, false
	}

	var user authsdk.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.discard(ctx, "user is not valid JSON")
		return Session{}, false
	}
	if token == "" || user.ID == "" {
		s.discard(ctx, "empty token or user id")
		return Session{}, false
	}

	return Session{Token: token, User: user}, true
}

// Clear removes both values. Clearing an empty store is not an error.
func (s *CredentialStore) Clear(ctx context.Context) error {
	return errors.Join(
		s.kv.Delete(ctx, TokenKey),
		s.kv.Delete(ctx, UserKey),
	)
}

func (s *CredentialStore) discard(ctx context.Context, reason string) {
	s.logger.Warn("discarding malformed stored session", "reason", reason)
	if err := s.Clear(ctx); err != nil {
		s.logger.Warn("failed to clear malformed session", "err", err)
	}
}
