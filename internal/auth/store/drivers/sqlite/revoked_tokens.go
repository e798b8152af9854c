package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/matchday/internal/auth/domain"
	"github.com/aussiebroadwan/matchday/internal/auth/store"
)

type revokedTokensRepo struct {
	q *Queries
}

func (r *revokedTokensRepo) RevokeToken(ctx context.Context, t domain.RevokedToken) error {
	err := r.q.CreateRevokedToken(ctx, revokedTokenRow{
		JTI:       t.JTI,
		UserID:    t.UserID,
		Reason:    t.Reason,
		ExpiresAt: toUnixMilli(t.ExpiresAt),
		RevokedAt: toUnixMilli(t.RevokedAt),
	})
	if err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return store.ErrNotFound
	}
	return mapConflict(err)
}

func (r *revokedTokensRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.q.CountRevokedToken(ctx, jti)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *revokedTokensRepo) DeleteExpiredRevokedTokens(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredRevokedTokens(ctx, toUnixMilli(now))
}
