package sqlite

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/matchday/internal/auth/domain"
)

type usersRepo struct {
	q *Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	err := r.q.CreateUser(ctx, userRow{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        strings.ToLower(strings.TrimSpace(u.Email)),
		DateOfBirth:  u.DateOfBirth,
		Gender:       u.Gender,
		PasswordHash: u.PasswordHash,
		CreatedAt:    toUnixMilli(u.CreatedAt),
		UpdatedAt:    toUnixMilli(u.UpdatedAt),
	})
	return mapConflict(err)
}

func (r *usersRepo) CountUsers(ctx context.Context) (int64, error) {
	return r.q.CountUsers(ctx)
}
