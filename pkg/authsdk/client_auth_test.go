package authsdk_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/matchday/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, h http.HandlerFunc) *authsdk.SDKClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return authsdk.NewSDKClient(srv.URL + "/")
}

func TestLogin(t *testing.T) {
	t.Parallel()

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req authsdk.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Password != "hunter22" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid email or password"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"t1","user":{"id":"u1","firstName":"Sam","email":"sam@example.com","createdAt":"2024-01-02T03:04:05Z"}}`))
	})

	res, err := c.Login(context.Background(), authsdk.LoginRequest{Email: "sam@example.com", Password: "hunter22"})
	require.NoError(t, err)
	require.Equal(t, "t1", res.Token)
	require.Equal(t, "u1", res.User.ID)
	require.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), res.User.CreatedAt)

	_, err = c.Login(context.Background(), authsdk.LoginRequest{Email: "sam@example.com", Password: "nope"})
	var authErr *authsdk.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	require.Equal(t, "Invalid email or password", authErr.Message)
	require.ErrorIs(t, err, authsdk.ErrInvalidCredentials)
	require.ErrorIs(t, err, authsdk.ErrAuthentication)
}

func TestErrorBodyFallsBackToStatusText(t *testing.T) {
	t.Parallel()

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>upstream down</html>"))
	})

	_, err := c.Login(context.Background(), authsdk.LoginRequest{})
	var authErr *authsdk.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, http.StatusBadGateway, authErr.StatusCode)
	require.Equal(t, "Bad Gateway", authErr.Message)
}

func TestRegisterExpects201(t *testing.T) {
	t.Parallel()

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/register", r.URL.Path)

		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		require.NotContains(t, raw, "confirmPassword")
		require.Equal(t, "1990-01-01", raw["dateOfBirth"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"token":"t2","user":{"id":"u2"}}`))
	})

	res, err := c.Register(context.Background(), authsdk.RegisterRequest{
		FirstName: "Sam", LastName: "Kerr", Email: "sam@example.com",
		Password: "hunter22", DateOfBirth: "1990-01-01", Gender: "female",
	})
	require.NoError(t, err)
	require.Equal(t, "t2", res.Token)
}

func TestRefreshAndLogoutSendBearer(t *testing.T) {
	t.Parallel()

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer old", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/api/refresh":
			_, _ = w.Write([]byte(`{"token":"new","user":{"id":"u1"}}`))
		case "/api/logout":
			w.WriteHeader(http.StatusNoContent)
		case "/api/me":
			_, _ = w.Write([]byte(`{"id":"u1","email":"sam@example.com"}`))
		default:
			http.NotFound(w, r)
		}
	})

	res, err := c.Refresh(context.Background(), "old")
	require.NoError(t, err)
	require.Equal(t, "new", res.Token)

	require.NoError(t, c.Logout(context.Background(), "old"))

	u, err := c.Me(context.Background(), "old")
	require.NoError(t, err)
	require.Equal(t, "sam@example.com", u.Email)
}

func TestNetworkErrorClassification(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := authsdk.NewSDKClient(url).Login(context.Background(), authsdk.LoginRequest{})

	var netErr *authsdk.NetworkError
	require.ErrorAs(t, err, &netErr)
	require.Equal(t, "login", netErr.Op)
	require.ErrorIs(t, err, authsdk.ErrAuthentication)

	var authErr *authsdk.AuthenticationError
	require.False(t, errors.As(err, &authErr))
}

func TestContextDeadlineIsNetworkError(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Refresh(ctx, "tok")
	var netErr *authsdk.NetworkError
	require.ErrorAs(t, err, &netErr)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/readyz" {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok","version":"dev"}`))
	})

	live, err := c.GetLiveness(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)

	_, err = c.GetReadiness(context.Background())
	var authErr *authsdk.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, http.StatusServiceUnavailable, authErr.StatusCode)
}
