package session_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/matchday/pkg/authsdk"
	"github.com/aussiebroadwan/matchday/pkg/cryptox"
	"github.com/aussiebroadwan/matchday/pkg/jwtx"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
	quiet   = 100 * time.Millisecond
)

var t0 = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

var testUser = authsdk.User{
	ID:          "01HZX4Q6M3V0Q9K1TB4E3S5N7R",
	FirstName:   "Sam",
	LastName:    "Kerr",
	Email:       "sam@example.com",
	DateOfBirth: "1993-09-10",
	Gender:      "female",
	CreatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	UpdatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
}

// minter issues tokens that expire relative to a clock.
type minter struct {
	t      *testing.T
	clock  clockwork.Clock
	signer jwtx.Signer
}

func newMinter(t *testing.T, clock clockwork.Clock) *minter {
	t.Helper()
	priv, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("", priv)
	require.NoError(t, err)
	return &minter{t: t, clock: clock, signer: signer}
}

// token expires ttl after the clock's current time. A negative ttl gives
// an already expired token.
func (m *minter) token(ttl time.Duration) string {
	m.t.Helper()
	tok, err := m.signer.Sign(jwtx.NewAccessClaims(testUser.ID, testUser.Email, "matchday-test", ttl, m.clock.Now()))
	require.NoError(m.t, err)
	return tok
}
