package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/matchday/internal/auth/domain"
	"github.com/aussiebroadwan/matchday/internal/auth/store"
	"github.com/aussiebroadwan/matchday/pkg/jwtx"
	"github.com/aussiebroadwan/matchday/pkg/slogx"
)

const DefaultRefreshGrace = 24 * time.Hour

// TokenService mints session tokens and handles their rotation and
// revocation. A token may be exchanged once, up to RefreshGrace after it
// expired. The exchanged jti is revoked in the same transaction that
// mints its replacement.
type TokenService struct {
	KeyManager   *jwtx.KeyManager
	Store        store.Store
	Issuer       string
	AccessTTL    time.Duration
	RefreshGrace time.Duration
	Now          func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *TokenService) ttl() time.Duration {
	if s.AccessTTL <= 0 {
		return jwtx.DefaultAccessTokenTTL
	}
	return s.AccessTTL
}

// Issue signs a fresh token for u.
func (s *TokenService) Issue(u domain.User) (domain.IssuedToken, error) {
	claims := jwtx.NewAccessClaims(u.ID, u.Email, s.Issuer, s.ttl(), s.now())
	tok, err := s.KeyManager.GetSigner().Sign(claims)
	if err != nil {
		return domain.IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}
	return domain.IssuedToken{
		Token:     tok,
		JTI:       claims.ID,
		ExpiresAt: claims.Expiry(),
	}, nil
}

// exchangeable verifies raw and checks it is still inside the refresh
// grace window.
func (s *TokenService) exchangeable(raw string) (jwtx.Claims, error) {
	claims, err := s.KeyManager.Verifier.VerifySignature(raw)
	if err != nil {
		return jwtx.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ID == "" {
		return jwtx.Claims{}, fmt.Errorf("%w: missing jti", ErrInvalidToken)
	}
	if s.now().After(claims.Expiry().Add(s.RefreshGrace)) {
		return jwtx.Claims{}, fmt.Errorf("%w: past refresh grace", ErrInvalidToken)
	}
	return claims, nil
}

// Refresh exchanges raw for a new token. Presenting the same token twice
// fails with ErrInvalidToken.
func (s *TokenService) Refresh(ctx context.Context, raw string) (domain.IssuedToken, domain.User, error) {
	l := slogx.FromContext(ctx)

	claims, err := s.exchangeable(raw)
	if err != nil {
		return domain.IssuedToken{}, domain.User{}, err
	}

	var (
		issued domain.IssuedToken
		user   domain.User
	)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, claims.Subject)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: unknown subject", ErrInvalidToken)
			}
			return err
		}

		err = tx.RevokedTokens().RevokeToken(ctx, domain.RevokedToken{
			JTI:       claims.ID,
			UserID:    u.ID,
			Reason:    domain.RevokeReasonRefresh,
			ExpiresAt: claims.Expiry().Add(s.RefreshGrace),
			RevokedAt: s.now().UTC(),
		})
		if err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return fmt.Errorf("%w: already exchanged or revoked", ErrInvalidToken)
			}
			return err
		}

		issued, err = s.Issue(u)
		user = u
		return err
	})
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			l.Info("refresh rejected", slog.String("reason", err.Error()))
		}
		return domain.IssuedToken{}, domain.User{}, err
	}

	l.Debug("token refreshed", slog.String("user_id", user.ID), slog.String("jti", issued.JTI))
	return issued, user, nil
}

// Logout revokes raw. Revoking an already revoked token is not an error.
func (s *TokenService) Logout(ctx context.Context, raw string) error {
	claims, err := s.exchangeable(raw)
	if err != nil {
		return err
	}

	err = s.Store.RevokedTokens().RevokeToken(ctx, domain.RevokedToken{
		JTI:       claims.ID,
		UserID:    claims.Subject,
		Reason:    domain.RevokeReasonLogout,
		ExpiresAt: claims.Expiry().Add(s.RefreshGrace),
		RevokedAt: s.now().UTC(),
	})
	switch {
	case err == nil:
		slogx.FromContext(ctx).Info("session revoked", slog.String("user_id", claims.Subject))
		return nil
	case errors.Is(err, store.ErrAlreadyExists):
		return nil
	case errors.Is(err, store.ErrNotFound):
		// Subject no longer exists, nothing to revoke against.
		return fmt.Errorf("%w: unknown subject", ErrInvalidToken)
	default:
		return err
	}
}

// CheckNotRevoked rejects claims whose jti was revoked. It is meant for
// httpx.AuthnMiddleware.
func (s *TokenService) CheckNotRevoked(ctx context.Context, c jwtx.Claims) error {
	if c.ID == "" {
		return fmt.Errorf("%w: missing jti", ErrInvalidToken)
	}
	revoked, err := s.Store.RevokedTokens().IsRevoked(ctx, c.ID)
	if err != nil {
		return err
	}
	if revoked {
		return fmt.Errorf("%w: revoked", ErrInvalidToken)
	}
	return nil
}
