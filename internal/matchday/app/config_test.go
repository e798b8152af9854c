package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var configEnv = []string{
	"MATCHDAY_CONFIG", "MATCHDAY_AUTH_URL", "MATCHDAY_STORE", "MATCHDAY_STORE_PATH",
	"MATCHDAY_REQUEST_TIMEOUT", "MATCHDAY_REFRESH_LEAD", "MATCHDAY_SERVER_LOGOUT",
	"FOOTBALL_API_URL", "FOOTBALL_API_KEY", "MATCHDAY_POLL_INTERVAL",
	"MATCHDAY_EMAIL", "MATCHDAY_PASSWORD", "ENV", "LOG_LEVEL", "LOG_FORMAT",
}

// cleanEnv isolates a test from the caller's environment and any .env file.
func cleanEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range configEnv {
		t.Setenv(k, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cleanEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
	require.Equal(t, 60*time.Second, cfg.RefreshLead)
}

func TestLoadConfigLayers(t *testing.T) {
	cleanEnv(t)

	path := filepath.Join(t.TempDir(), "matchday.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
auth_url = "http://auth.internal:9000"
store = "sqlite"
store_path = "/var/lib/matchday/session.db"
refresh_lead = "2m"
server_logout = true
football_api_key = "from-file"
`), 0o600))

	t.Setenv("MATCHDAY_CONFIG", path)
	t.Setenv("FOOTBALL_API_KEY", "from-env")
	t.Setenv("MATCHDAY_POLL_INTERVAL", "30")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "http://auth.internal:9000", cfg.AuthURL)
	require.Equal(t, StoreSQLite, cfg.Store)
	require.Equal(t, "/var/lib/matchday/session.db", cfg.StorePath)
	require.Equal(t, 2*time.Minute, cfg.RefreshLead)
	require.True(t, cfg.ServerLogout)
	require.Equal(t, "from-env", cfg.FootballAPIKey, "env beats the file")
	require.Equal(t, 30*time.Second, cfg.PollInterval)
	require.Equal(t, 15*time.Second, cfg.RequestTimeout, "untouched keys keep defaults")
}

func TestLoadConfigBadFile(t *testing.T) {
	cleanEnv(t)

	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("store = [unterminated"), 0o600))
	t.Setenv("MATCHDAY_CONFIG", path)

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"memory without path", func(c *Config) { c.Store = StoreMemory; c.StorePath = "" }, false},
		{"file without path", func(c *Config) { c.StorePath = "" }, true},
		{"unknown store", func(c *Config) { c.Store = "redis" }, true},
		{"no auth url", func(c *Config) { c.AuthURL = "" }, true},
		{"email without password", func(c *Config) { c.Email = "sam@example.com" }, true},
		{"email and password", func(c *Config) { c.Email = "sam@example.com"; c.Password = "hunter22" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
