package matches_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/aussiebroadwan/matchday/pkg/matches"
)

const liveBody = `{
  "errors": [],
  "results": 2,
  "response": [
    {
      "fixture": {"id": 1035037, "status": {"long": "Second Half", "short": "2H", "elapsed": 67}},
      "league": {"name": "Premier League", "logo": "https://media.api-sports.io/football/leagues/39.png"},
      "teams": {
        "home": {"name": "Arsenal", "logo": "https://media.api-sports.io/football/teams/42.png"},
        "away": {"name": "Chelsea", "logo": "https://media.api-sports.io/football/teams/49.png"}
      },
      "goals": {"home": 2, "away": 1}
    },
    {
      "fixture": {"id": 1035038, "status": {"long": "Not Started", "short": "NS"}},
      "league": {"name": "Premier League", "logo": ""},
      "teams": {"home": {"name": "Leeds", "logo": ""}, "away": {"name": "Fulham", "logo": ""}},
      "goals": {"home": null, "away": null}
    }
  ]
}`

func newClient(t *testing.T, h http.HandlerFunc) *matches.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := matches.NewClient(srv.URL, "test-key")
	c.Limiter = rate.NewLimiter(rate.Inf, 1)
	return c
}

func TestLiveFixtures(t *testing.T) {
	t.Parallel()

	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/fixtures", r.URL.Path)
		require.Equal(t, "all", r.URL.Query().Get("live"))
		require.Equal(t, "test-key", r.Header.Get(matches.APIKeyHeader))
		_, _ = w.Write([]byte(liveBody))
	})

	fixtures, err := c.LiveFixtures(context.Background())
	require.NoError(t, err)
	require.Len(t, fixtures, 2)

	f := fixtures[0]
	require.Equal(t, int64(1035037), f.Fixture.ID)
	require.Equal(t, "Premier League", f.League.Name)
	require.Equal(t, "Arsenal", f.Teams.Home.Name)
	require.Equal(t, "Chelsea", f.Teams.Away.Name)
	require.Equal(t, "Second Half", f.Fixture.Status.Long)
	require.True(t, f.IsLive())
	require.Equal(t, "2 - 1", f.Score())

	require.False(t, fixtures[1].IsLive())
	require.Nil(t, fixtures[1].Goals.Home)
	require.Equal(t, "- - -", fixtures[1].Score())
}

func TestLiveFixturesFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"message":"boom"}`},
		{"unauthorized", http.StatusUnauthorized, ``},
		{"api errors object", http.StatusOK, `{"errors":{"token":"Error/Missing application key."},"response":[]}`},
		{"api errors array", http.StatusOK, `{"errors":["rate limit"],"response":[]}`},
		{"not json", http.StatusOK, `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.LiveFixtures(context.Background())
			require.ErrorIs(t, err, matches.ErrFetch)
			require.Contains(t, err.Error(), "failed to fetch matches")
		})
	}
}

func TestLiveFixturesEmpty(t *testing.T) {
	t.Parallel()
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[],"response":null}`))
	})

	fixtures, err := c.LiveFixtures(context.Background())
	require.NoError(t, err)
	require.NotNil(t, fixtures)
	require.Empty(t, fixtures)
}

func TestLiveFixturesWaitsOnLimiter(t *testing.T) {
	t.Parallel()
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(liveBody))
	})
	c.Limiter = rate.NewLimiter(rate.Every(time.Hour), 1)

	_, err := c.LiveFixtures(context.Background())
	require.NoError(t, err)

	// The single token is spent; the next call cannot be served before the
	// deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.LiveFixtures(ctx)
	require.ErrorIs(t, err, matches.ErrFetch)
}
