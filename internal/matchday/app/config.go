package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/matchday/pkg/matches"
	"github.com/aussiebroadwan/matchday/pkg/session"
)

// Store kinds for persisted credentials.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Config is the client daemon configuration. Values come from defaults,
// then the TOML file named by MATCHDAY_CONFIG, then the environment.
type Config struct {
	AuthURL        string        `toml:"auth_url"`
	Store          string        `toml:"store"`
	StorePath      string        `toml:"store_path"`
	RequestTimeout time.Duration `toml:"request_timeout"`
	RefreshLead    time.Duration `toml:"refresh_lead"`
	ServerLogout   bool          `toml:"server_logout"`

	FootballAPIURL string        `toml:"football_api_url"`
	FootballAPIKey string        `toml:"football_api_key"`
	PollInterval   time.Duration `toml:"poll_interval"`

	// Email and Password log in when no session was restored.
	Email    string `toml:"email"`
	Password string `toml:"password"`

	Env       string `toml:"env"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

func DefaultConfig() Config {
	return Config{
		AuthURL:        "http://localhost:8080",
		Store:          StoreFile,
		StorePath:      "matchday-session.json",
		RequestTimeout: session.DefaultRequestTimeout,
		RefreshLead:    session.DefaultRefreshLead,
		FootballAPIURL: matches.DefaultBaseURL,
		PollInterval:   matches.DefaultPollInterval,
		Env:            "dev",
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// LoadConfig loads .env, the optional TOML file and the environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if path := os.Getenv("MATCHDAY_CONFIG"); path != "" {
		if err := LoadTOML(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML overlays the file at path onto cfg. Keys absent from the file
// keep their current values.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

func (c *Config) ApplyEnvOverrides() {
	setString(&c.AuthURL, "MATCHDAY_AUTH_URL")
	setString(&c.Store, "MATCHDAY_STORE")
	setString(&c.StorePath, "MATCHDAY_STORE_PATH")
	setDuration(&c.RequestTimeout, "MATCHDAY_REQUEST_TIMEOUT")
	setDuration(&c.RefreshLead, "MATCHDAY_REFRESH_LEAD")
	setBool(&c.ServerLogout, "MATCHDAY_SERVER_LOGOUT")
	setString(&c.FootballAPIURL, "FOOTBALL_API_URL")
	setString(&c.FootballAPIKey, "FOOTBALL_API_KEY")
	setDuration(&c.PollInterval, "MATCHDAY_POLL_INTERVAL")
	setString(&c.Email, "MATCHDAY_EMAIL")
	setString(&c.Password, "MATCHDAY_PASSWORD")
	setString(&c.Env, "ENV")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.LogFormat, "LOG_FORMAT")
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory:
	case StoreFile, StoreSQLite:
		if c.StorePath == "" {
			return fmt.Errorf("store %q needs a store path", c.Store)
		}
	default:
		return fmt.Errorf("unknown store %q, want memory, file or sqlite", c.Store)
	}
	if c.AuthURL == "" {
		return fmt.Errorf("auth url is required")
	}
	if (c.Email == "") != (c.Password == "") {
		return fmt.Errorf("email and password must be set together")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// setDuration accepts Go durations ("90s") or bare seconds.
func setDuration(dst *time.Duration, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
		return
	}
	if secs, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(secs) * time.Second
	}
}
