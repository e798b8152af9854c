package authsdk

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a session token.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	resp, err := c.doRequest(ctx, "login", http.MethodPost, "/api/login", "", req)
	if err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := decodeJSON("login", resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and returns its first session token.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	resp, err := c.doRequest(ctx, "register", http.MethodPost, "/api/register", "", req)
	if err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := decodeJSON("register", resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh trades token for a new one. The server rejects tokens that were
// already refreshed or logged out.
func (c *SDKClient) Refresh(ctx context.Context, token string) (*AuthResponse, error) {
	resp, err := c.doRequest(ctx, "refresh", http.MethodPost, "/api/refresh", token, nil)
	if err != nil {
		return nil, err
	}

	var out AuthResponse
	if err := decodeJSON("refresh", resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes token server-side.
func (c *SDKClient) Logout(ctx context.Context, token string) error {
	resp, err := c.doRequest(ctx, "logout", http.MethodPost, "/api/logout", token, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// Me returns the profile of the token's subject.
func (c *SDKClient) Me(ctx context.Context, token string) (*User, error) {
	resp, err := c.doRequest(ctx, "me", http.MethodGet, "/api/me", token, nil)
	if err != nil {
		return nil, err
	}

	var u User
	if err := decodeJSON("me", resp, &u, http.StatusOK); err != nil {
		return nil, err
	}
	return &u, nil
}
