package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/matchday/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. It exposes sub-repositories so
// transactions can only be opened from the root.
type Store interface {
	Users() Users
	RevokedTokens() RevokedTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts u. A taken email is ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	CountUsers(ctx context.Context) (int64, error)
}

type RevokedTokens interface {
	// RevokeToken records t. Revoking a jti twice is ErrAlreadyExists,
	// which refresh relies on to reject a replayed token.
	RevokeToken(ctx context.Context, t domain.RevokedToken) error

	IsRevoked(ctx context.Context, jti string) (bool, error)

	// DeleteExpiredRevokedTokens drops rows whose token expired before now
	// and reports how many went.
	DeleteExpiredRevokedTokens(ctx context.Context, now time.Time) (int64, error)
}
