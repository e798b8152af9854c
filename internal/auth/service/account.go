package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/matchday/internal/auth/domain"
	"github.com/aussiebroadwan/matchday/internal/auth/store"
	"github.com/aussiebroadwan/matchday/pkg/authsdk"
	"github.com/aussiebroadwan/matchday/pkg/cryptox"
	"github.com/aussiebroadwan/matchday/pkg/idx"
	"github.com/aussiebroadwan/matchday/pkg/slogx"
)

// dummyHash is verified against when the email is unknown so that a miss
// costs the same as a wrong password.
var dummyHash = sync.OnceValue(func() string {
	h, _ := cryptox.HashPassword("matchday-unknown-user")
	return h
})

type AccountService struct {
	Store store.Store
	Now   func() time.Time
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Register validates req and creates the account. Problems with the input
// come back as *authsdk.ValidationError and a taken email as ErrEmailTaken.
func (s *AccountService) Register(ctx context.Context, req authsdk.RegisterRequest) (domain.User, error) {
	l := slogx.FromContext(ctx)
	now := s.now().UTC()

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := authsdk.ValidateRegisterRequest(req, now); err != nil {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.NewAt(now).String(),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        req.Email,
		DateOfBirth:  req.DateOfBirth,
		Gender:       strings.TrimSpace(req.Gender),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			l.Info("registration rejected, email taken")
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	l.Info("user registered", slog.String("user_id", u.ID))
	return u, nil
}

// Authenticate checks an email and password pair.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = cryptox.VerifyPassword(password, dummyHash())
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	return u, nil
}

// GetUserByID fetches a user by id.
func (s *AccountService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}
