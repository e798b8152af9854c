package httpx_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/matchday/pkg/httpx"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func hit(h http.Handler, remote string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodGet, "/", nil)
	} else {
		req = httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIPKeyExtractor(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"remote addr", nil, "192.168.1.1"},
		{"x-forwarded-for first hop", map[string]string{"X-Forwarded-For": "203.0.113.1, 192.168.1.1"}, "203.0.113.1"},
		{"x-real-ip", map[string]string{"X-Real-IP": "203.0.113.2"}, "203.0.113.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.168.1.1:12345"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			require.Equal(t, tt.want, httpx.IPKeyExtractor(req))
		})
	}
}

func TestJSONFieldKeyExtractor(t *testing.T) {
	t.Run("reads field and restores body", func(t *testing.T) {
		body := `{"email":" Alice@Example.com ","password":"secret"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

		require.Equal(t, "alice@example.com", httpx.JSONFieldKeyExtractor("email")(req))

		rest, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		require.JSONEq(t, body, string(rest))
	})

	t.Run("missing or non-string field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":42}`))
		require.Empty(t, httpx.JSONFieldKeyExtractor("email")(req))
	})

	t.Run("not json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`email=alice`))
		require.Empty(t, httpx.JSONFieldKeyExtractor("email")(req))
	})
}

func TestCompositeKeyExtractorSkipsEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.RemoteAddr = "192.168.1.1:12345"

	key := httpx.CompositeKeyExtractor(":", httpx.IPKeyExtractor, httpx.JSONFieldKeyExtractor("email"))(req)
	require.Equal(t, "192.168.1.1", key)
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := httpx.RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3}

	t.Run("blocks once the bucket is empty", func(t *testing.T) {
		h := httpx.RateLimitByIP(cfg)(okHandler)
		for i := range 3 {
			require.Equal(t, http.StatusOK, hit(h, "192.168.1.1:1", "").Code, "request %d", i+1)
		}

		rec := hit(h, "192.168.1.1:1", "")
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))

		var msg httpx.Message
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
		require.Contains(t, msg.Message, "Too many requests")
	})

	t.Run("keys are independent", func(t *testing.T) {
		h := httpx.RateLimitByIP(cfg)(okHandler)
		for range 3 {
			hit(h, "10.0.0.1:1", "")
		}
		require.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:1", "").Code)
		require.Equal(t, http.StatusOK, hit(h, "10.0.0.2:1", "").Code)
	})

	t.Run("empty key passes through", func(t *testing.T) {
		h := httpx.RateLimitMiddleware(httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1},
			func(*http.Request) string { return "" })(okHandler)
		for range 3 {
			require.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1", "").Code)
		}
	})

	t.Run("ip and email", func(t *testing.T) {
		h := httpx.RateLimitByIPAndJSONField(httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}, "email")(okHandler)
		alice := `{"email":"alice@example.com"}`
		for range 2 {
			require.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1", alice).Code)
		}
		require.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:1", alice).Code)
		require.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1", `{"email":"bob@example.com"}`).Code)
	})
}

func TestRateLimitProfilesAreOrdered(t *testing.T) {
	for _, cfg := range []httpx.RateLimitConfig{httpx.StrictLimit, httpx.ModerateLimit, httpx.LenientLimit, httpx.PublicLimit} {
		require.Positive(t, cfg.RequestsPerWindow)
		require.Positive(t, cfg.Window)
		require.Positive(t, cfg.Burst)
	}
	require.Less(t, httpx.StrictLimit.RequestsPerWindow, httpx.ModerateLimit.RequestsPerWindow)
	require.Less(t, httpx.ModerateLimit.RequestsPerWindow, httpx.LenientLimit.RequestsPerWindow)
	require.Less(t, httpx.LenientLimit.RequestsPerWindow, httpx.PublicLimit.RequestsPerWindow)
}

func TestParseRateLimitFromEnv(t *testing.T) {
	def := httpx.RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 10}

	t.Run("defaults", func(t *testing.T) {
		require.Equal(t, def, httpx.ParseRateLimitFromEnv("MDTEST_NONE", def))
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("RATELIMIT_MDTEST_REQUESTS", "50")
		t.Setenv("RATELIMIT_MDTEST_WINDOW_SEC", "30")
		t.Setenv("RATELIMIT_MDTEST_BURST", "7")

		got := httpx.ParseRateLimitFromEnv("MDTEST", def)
		require.Equal(t, httpx.RateLimitConfig{RequestsPerWindow: 50, Window: 30 * time.Second, Burst: 7}, got)
	})

	t.Run("garbage ignored", func(t *testing.T) {
		t.Setenv("RATELIMIT_MDBAD_REQUESTS", "lots")
		t.Setenv("RATELIMIT_MDBAD_WINDOW_SEC", "0")
		t.Setenv("RATELIMIT_MDBAD_BURST", "-1")

		require.Equal(t, def, httpx.ParseRateLimitFromEnv("MDBAD", def))
	})
}

func BenchmarkRateLimitManyIPs(b *testing.B) {
	h := httpx.RateLimitByIP(httpx.RateLimitConfig{RequestsPerWindow: 1_000_000, Window: time.Minute, Burst: 1000})(okHandler)
	for i := 0; b.Loop(); i++ {
		hit(h, fmt.Sprintf("192.168.%d.%d:1", i%255, (i/255)%255), "")
	}
}
