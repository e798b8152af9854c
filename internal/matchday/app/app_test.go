package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authapp "github.com/aussiebroadwan/matchday/internal/auth/app"
	"github.com/aussiebroadwan/matchday/pkg/authsdk"
	"github.com/aussiebroadwan/matchday/pkg/kv"
	"github.com/aussiebroadwan/matchday/pkg/matches"
	"github.com/aussiebroadwan/matchday/pkg/session"
)

func startAuth(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	a, err := authapp.New(authapp.Config{
		Issuer:       authapp.DefaultIssuer,
		AccessTTL:    15 * time.Minute,
		RefreshGrace: time.Hour,
		NumKeys:      1,
		DatabaseFile: filepath.Join(dir, "auth.db"),
		PepperFile:   filepath.Join(dir, "pepper"),
		Env:          "test",
		LogLevel:     "error",
	})
	require.NoError(t, err)

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(func() {
		srv.Close()
		_ = a.Close()
	})

	_, err = authsdk.NewSDKClient(srv.URL).Register(t.Context(), authsdk.RegisterRequest{
		FirstName:   "Sam",
		LastName:    "Kerr",
		Email:       "sam@example.com",
		Password:    "hunter22",
		DateOfBirth: "1993-09-10",
		Gender:      "female",
	})
	require.NoError(t, err)

	return srv.URL
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()
	for _, kind := range []string{StoreMemory, StoreFile, StoreSQLite} {
		t.Run(kind, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Store = kind
			cfg.StorePath = filepath.Join(dir, kind+".store")

			s, closer, err := OpenStore(cfg)
			require.NoError(t, err)
			defer closer.Close()

			ctx := t.Context()
			require.NoError(t, s.Set(ctx, "k", "v"))
			got, err := s.Get(ctx, "k")
			require.NoError(t, err)
			require.Equal(t, "v", got)
		})
	}

	_, _, err := OpenStore(Config{Store: "redis"})
	require.Error(t, err)
}

func TestRunLogsInAndPersists(t *testing.T) {
	authURL := startAuth(t)

	var fixtureCalls atomic.Int32
	football := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fixtureCalls.Add(1)
		assert.Equal(t, "test-key", r.Header.Get(matches.APIKeyHeader))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"errors":[],"response":[]}`))
	}))
	defer football.Close()

	cfg := DefaultConfig()
	cfg.AuthURL = authURL
	cfg.StorePath = filepath.Join(t.TempDir(), "session.json")
	cfg.Email = "sam@example.com"
	cfg.Password = "hunter22"
	cfg.FootballAPIURL = football.URL
	cfg.FootballAPIKey = "test-key"
	cfg.LogLevel = "error"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, cfg) }()

	store := kv.NewFile(cfg.StorePath)
	require.Eventually(t, func() bool {
		tok, err := store.Get(context.Background(), session.TokenKey)
		return err == nil && tok != ""
	}, 5*time.Second, 20*time.Millisecond, "login should persist a token")

	require.Eventually(t, func() bool {
		return fixtureCalls.Load() > 0
	}, 5*time.Second, 20*time.Millisecond, "poller should load fixtures")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	// The session outlives the process.
	tok, err := store.Get(context.Background(), session.TokenKey)
	require.NoError(t, err)
	require.NotEmpty(t, tok)
}
