package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/matchday/internal/auth/service"
	"github.com/aussiebroadwan/matchday/internal/auth/store"
	"github.com/aussiebroadwan/matchday/pkg/authsdk"
	"github.com/aussiebroadwan/matchday/pkg/httpx"
	"github.com/aussiebroadwan/matchday/pkg/slogx"
)

type MeHandler struct {
	Accounts *service.AccountService
}

// ServeHTTP returns the profile of the token's subject.
//
//	@Summary		Current user
//	@Description	Returns the profile of the authenticated user.
//	@Tags			Session
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.User		"Profile"
//	@Failure		401	{object}	authsdk.ErrorBody	"Invalid or expired token"
//	@Failure		500	{object}	authsdk.ErrorBody	"Internal server error"
//	@Router			/api/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	user, err := h.Accounts.GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}
	if err != nil {
		log.Warn("failed to load user", "user_id", userID, "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSDKUser(user))
}
