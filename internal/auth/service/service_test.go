package service_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/matchday/internal/auth/service"
	"github.com/aussiebroadwan/matchday/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/matchday/pkg/authsdk"
	"github.com/aussiebroadwan/matchday/pkg/jwtx"
)

const issuer = "matchday-test"

type clock struct{ now time.Time }

func (c *clock) Now() time.Time          { return c.now }
func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fixture struct {
	store    *sqlite.Store
	clock    *clock
	keys     *jwtx.KeyManager
	accounts *service.AccountService
	tokens   *service.TokenService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "auth.db"))
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })

	c := &clock{now: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)}

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{
		Issuer:  issuer,
		NumKeys: 2,
		Now:     c.Now,
	})
	require.NoError(t, err)

	return &fixture{
		store: s,
		clock: c,
		keys:  km,
		accounts: &service.AccountService{
			Store: s,
			Now:   c.Now,
		},
		tokens: &service.TokenService{
			KeyManager:   km,
			Store:        s,
			Issuer:       issuer,
			AccessTTL:    time.Hour,
			RefreshGrace: 24 * time.Hour,
			Now:          c.Now,
		},
	}
}

func registration(email string) authsdk.RegisterRequest {
	return authsdk.RegisterRequest{
		FirstName:   "Sam",
		LastName:    "Kerr",
		Email:       email,
		Password:    "hunter22",
		DateOfBirth: "1993-09-10",
		Gender:      "female",
	}
}
