package auth_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/matchday/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestRateLimitLoginEndpoint verifies that /api/login is rate limited.
// This endpoint has strict limits (5 req/min) to slow down password guessing.
func TestRateLimitLoginEndpoint(t *testing.T) {
	baseURL, cleanup := setupAuthServerWithDefaultRateLimits(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)
	req := authsdk.LoginRequest{Email: "victim@example.com", Password: "wrong-password"}

	for i := range 5 {
		_, err := client.Login(t.Context(), req)
		assertStatus(t, err, http.StatusUnauthorized, fmt.Sprintf("Should not be rate limited yet (request %d)", i+1))
	}

	_, err := client.Login(t.Context(), req)
	authErr := assertStatus(t, err, http.StatusTooManyRequests, "Should be rate limited after 5 requests")
	require.ErrorIs(t, err, authsdk.ErrRateLimited)
	require.Equal(t, "Too many requests. Please try again later.", authErr.Message)

	t.Logf("Successfully rate limited after 5 requests to /api/login")
}

// TestRateLimitIsPerEmail verifies a different email gets its own budget.
func TestRateLimitIsPerEmail(t *testing.T) {
	baseURL, cleanup := setupAuthServerWithDefaultRateLimits(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	for range 6 {
		_, _ = client.Login(t.Context(), authsdk.LoginRequest{Email: "victim@example.com", Password: "wrong-password"})
	}

	_, err := client.Login(t.Context(), authsdk.LoginRequest{Email: "other@example.com", Password: "wrong-password"})
	assertStatus(t, err, http.StatusUnauthorized, "Another email should not be rate limited")
}

// TestRateLimitJWKSEndpoint verifies the JWKS endpoint has a high public limit.
func TestRateLimitJWKSEndpoint(t *testing.T) {
	baseURL, cleanup := setupAuthServerWithDefaultRateLimits(t)
	defer cleanup()

	client := authsdk.NewSDKClient(baseURL)

	for i := range 50 {
		_, err := client.GetJWKS(t.Context())
		require.NoError(t, err, "JWKS request %d should not be rate limited", i+1)
	}
}
