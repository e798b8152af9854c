package auth_test

import (
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/matchday/internal/auth/app"
	"github.com/aussiebroadwan/matchday/pkg/authsdk"
	"github.com/aussiebroadwan/matchday/pkg/httpx"
)

/*
 * Common constants and helper functions for auth service end-to-end tests.
 * The service runs in-process behind an httptest server with its own
 * sqlite file, pepper and keys per test.
 */

const (
	testIssuer = "matchday-auth-test"

	testEmail    = "sam@example.com"
	testPassword = "hunter22"
)

var relaxedLimit = httpx.RateLimitConfig{
	RequestsPerWindow: 1000,
	Window:            time.Minute,
	Burst:             1000,
}

// setupAuthServer starts the auth service with relaxed rate limits and
// returns its base URL. opts adjust the config before startup.
func setupAuthServer(t *testing.T, opts ...func(*app.Config)) (string, func()) {
	t.Helper()

	strict, moderate := httpx.StrictLimit, httpx.ModerateLimit
	httpx.StrictLimit, httpx.ModerateLimit = relaxedLimit, relaxedLimit
	defer func() {
		httpx.StrictLimit, httpx.ModerateLimit = strict, moderate
	}()

	return startAuthServer(t, opts...)
}

// setupAuthServerWithDefaultRateLimits starts the auth service with the
// production rate limits. Only the rate limit tests should need this.
func setupAuthServerWithDefaultRateLimits(t *testing.T) (string, func()) {
	t.Helper()
	return startAuthServer(t)
}

func startAuthServer(t *testing.T, opts ...func(*app.Config)) (string, func()) {
	t.Helper()
	dir := t.TempDir()

	cfg := app.Config{
		Issuer:               testIssuer,
		AccessTTL:            15 * time.Minute,
		RefreshGrace:         time.Hour,
		NumKeys:              1,
		DatabaseFile:         filepath.Join(dir, "auth.db"),
		PepperFile:           filepath.Join(dir, "pepper"),
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	application, err := app.New(cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())

	cleanup := func() {
		srv.Close()
		if err := application.Close(); err != nil {
			t.Logf("failed to close application: %v", err)
		}
	}

	return srv.URL, cleanup
}

func registerRequest(email string) authsdk.RegisterRequest {
	return authsdk.RegisterRequest{
		FirstName:   "Sam",
		LastName:    "Kerr",
		Email:       email,
		Password:    testPassword,
		DateOfBirth: "1993-09-10",
		Gender:      "female",
	}
}

// registerUser creates the default test account and returns its session.
func registerUser(t *testing.T, client *authsdk.SDKClient) *authsdk.AuthResponse {
	t.Helper()

	resp, err := client.Register(t.Context(), registerRequest(testEmail))
	require.NoError(t, err, "Register should succeed")
	require.NotEmpty(t, resp.Token, "Token should not be empty")
	require.NotEmpty(t, resp.User.ID, "User ID should not be empty")

	return resp
}

// assertStatus checks err is an AuthenticationError with the given status.
func assertStatus(t *testing.T, err error, status int, context string) *authsdk.AuthenticationError {
	t.Helper()
	require.Error(t, err, context)

	var authErr *authsdk.AuthenticationError
	require.True(t, errors.As(err, &authErr), "%s - expected AuthenticationError, got: %v", context, err)
	require.Equal(t, status, authErr.StatusCode, "%s - unexpected status, message: %s", context, authErr.Message)
	return authErr
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
