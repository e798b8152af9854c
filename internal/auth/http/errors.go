package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/matchday/internal/auth/domain"
	"github.com/aussiebroadwan/matchday/internal/auth/service"
	"github.com/aussiebroadwan/matchday/pkg/authsdk"
	"github.com/aussiebroadwan/matchday/pkg/slogx"
)

// writeServiceError maps service failures onto the public error bodies.
// Anything unrecognised is logged and reported as a server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *authsdk.ValidationError
	switch {
	case errors.As(err, &verr):
		authsdk.ErrInvalidRequest.WithFields(verr.Fields).WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		authsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrEmailTaken):
		authsdk.ErrEmailTaken.WriteError(w)
	case errors.Is(err, service.ErrInvalidToken):
		authsdk.ErrInvalidToken.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
	}
}

func toSDKUser(u domain.User) authsdk.User {
	return authsdk.User{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		DateOfBirth: u.DateOfBirth,
		Gender:      u.Gender,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
