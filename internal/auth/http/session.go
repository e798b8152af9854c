package http

import (
	"net/http"

	"github.com/aussiebroadwan/matchday/internal/auth/service"
	"github.com/aussiebroadwan/matchday/pkg/authsdk"
	"github.com/aussiebroadwan/matchday/pkg/httpx"
)

// SessionHandler serves the login, register, refresh and logout endpoints.
type SessionHandler struct {
	Accounts *service.AccountService
	Tokens   *service.TokenService
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Exchanges an email and password for a session token.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.AuthResponse	"token, user"
//	@Failure		400		{object}	authsdk.ErrorBody		"Invalid request"
//	@Failure		401		{object}	authsdk.ErrorBody		"Invalid email or password"
//	@Failure		429		{object}	authsdk.ErrorBody		"Too many requests"
//	@Router			/api/login [post].
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if err := (authsdk.LoginForm{Email: req.Email, Password: req.Password}).Validate(); err != nil {
		writeServiceError(w, r, err)
		return
	}

	user, err := h.Accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	issued, err := h.Tokens.Issue(user)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.AuthResponse{Token: issued.Token, User: toSDKUser(user)})
}

// HandleRegister godoc
//
//	@Summary		Register
//	@Description	Creates an account and logs it in.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			body	body		authsdk.RegisterRequest	true	"New account"
//	@Success		201		{object}	authsdk.AuthResponse	"token, user"
//	@Failure		400		{object}	authsdk.ErrorBody		"Invalid request, with per-field details"
//	@Failure		409		{object}	authsdk.ErrorBody		"Email already registered"
//	@Failure		429		{object}	authsdk.ErrorBody		"Too many requests"
//	@Router			/api/register [post].
func (h *SessionHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		authsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	user, err := h.Accounts.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	issued, err := h.Tokens.Issue(user)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authsdk.AuthResponse{Token: issued.Token, User: toSDKUser(user)})
}

// HandleRefresh godoc
//
//	@Summary		Refresh a session token
//	@Description	Exchanges the bearer token for a new one. Expired tokens are accepted during the refresh grace period, and each token can be exchanged once.
//	@Tags			Session
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.AuthResponse	"token, user"
//	@Failure		401	{object}	authsdk.ErrorBody		"Invalid or expired token"
//	@Failure		429	{object}	authsdk.ErrorBody		"Too many requests"
//	@Router			/api/refresh [post].
func (h *SessionHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	raw, ok := httpx.BearerToken(r)
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	issued, user, err := h.Tokens.Refresh(r.Context(), raw)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.AuthResponse{Token: issued.Token, User: toSDKUser(user)})
}

// HandleLogout godoc
//
//	@Summary		Log out
//	@Description	Revokes the bearer token. Revoking an already revoked token succeeds.
//	@Tags			Session
//	@Security		BearerAuth
//	@Success		204	"Revoked"
//	@Failure		401	{object}	authsdk.ErrorBody	"Invalid or expired token"
//	@Router			/api/logout [post].
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	raw, ok := httpx.BearerToken(r)
	if !ok {
		authsdk.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.Tokens.Logout(r.Context(), raw); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
