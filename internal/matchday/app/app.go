package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/aussiebroadwan/matchday/pkg/authsdk"
	"github.com/aussiebroadwan/matchday/pkg/kv"
	kvsqlite "github.com/aussiebroadwan/matchday/pkg/kv/sqlite"
	"github.com/aussiebroadwan/matchday/pkg/matches"
	"github.com/aussiebroadwan/matchday/pkg/session"
	"github.com/aussiebroadwan/matchday/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Run restores or establishes a session, keeps it fresh and, with an API
// key configured, polls live fixtures. It returns once ctx is done and
// everything has stopped.
func Run(ctx context.Context, cfg Config) error {
	logger := slogx.New(slogx.Config{
		Service: "matchday",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	store, closer, err := OpenStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Error("error closing credential store", "err", err)
		}
	}()

	ctrl := session.NewController(
		authsdk.NewSDKClient(cfg.AuthURL),
		session.NewCredentialStore(store, logger),
		session.Options{
			Logger:         logger,
			RequestTimeout: cfg.RequestTimeout,
			RefreshLead:    cfg.RefreshLead,
			ServerLogout:   cfg.ServerLogout,
		},
	)
	defer ctrl.Close()

	unsubscribe := ctrl.Subscribe(logSession(logger))
	defer unsubscribe()

	if !ctrl.Start(ctx) && cfg.Email != "" {
		if _, err := ctrl.Login(ctx, cfg.Email, cfg.Password); err != nil {
			// Keep running; the user can still log in later.
			logger.Error("login failed", "email", cfg.Email, "err", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.FootballAPIKey != "" {
		startMatches(gctx, g, cfg, logger)
	} else {
		logger.Info("no football api key, live fixtures disabled")
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down matchday")
		return nil
	})

	return g.Wait()
}

// startMatches runs the poller and carousel until ctx is done.
func startMatches(ctx context.Context, g *errgroup.Group, cfg Config, logger *slog.Logger) {
	carousel := matches.NewCarousel(nil, matches.DefaultPageSize, matches.DefaultAdvanceInterval)

	poller := matches.NewPoller(
		matches.NewClient(cfg.FootballAPIURL, cfg.FootballAPIKey),
		logger.With("component", "matches"),
		cfg.PollInterval,
	)
	poller.OnUpdate = func(fixtures []matches.Fixture) {
		carousel.SetFixtures(fixtures)
		live := 0
		for _, f := range fixtures {
			if f.IsLive() {
				live++
			}
		}
		logger.Info("fixtures updated", "total", len(fixtures), "live", live, "pages", carousel.Pages())
		for _, f := range carousel.Visible() {
			logger.Debug("fixture",
				"league", f.League.Name,
				"home", f.Teams.Home.Name,
				"away", f.Teams.Away.Name,
				"score", f.Score(),
				"status", f.Fixture.Status.Short,
			)
		}
	}

	poller.Start()
	carousel.Start()

	g.Go(func() error {
		<-ctx.Done()
		poller.Stop()
		carousel.Stop()
		return nil
	})
}

func logSession(logger *slog.Logger) func(session.Session) {
	return func(s session.Session) {
		if s.IsZero() {
			logger.Info("session ended")
			return
		}
		logger.Info("session active", "user_id", s.User.ID, "name", s.User.DisplayName())
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStore builds the credential KV store named by cfg.Store.
func OpenStore(cfg Config) (kv.Store, io.Closer, error) {
	switch cfg.Store {
	case StoreMemory:
		return kv.NewMemory(), nopCloser{}, nil
	case StoreFile:
		return kv.NewFile(cfg.StorePath), nopCloser{}, nil
	case StoreSQLite:
		s, err := kvsqlite.Open("file:" + cfg.StorePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open session database: %w", err)
		}
		return s, s, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
