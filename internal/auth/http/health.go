package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/matchday/internal/auth/store"
	"github.com/aussiebroadwan/matchday/pkg/authsdk"
	"github.com/aussiebroadwan/matchday/pkg/httpx"
	"github.com/aussiebroadwan/matchday/pkg/jwtx"
)

var errNoSigningKeys = errors.New("no keys loaded")

func healthResponse(startTime time.Time, version, status string) authsdk.HealthResponse {
	return authsdk.HealthResponse{
		Status:  status,
		Uptime:  time.Since(startTime).String(),
		Version: version,
	}
}

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Always 200 while the mock auth service is serving.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, healthResponse(startTime, version, "ok"))
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Reports whether the account database answers and a signing key is loaded.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"all checks pass"
//	@Failure		503	{object}	authsdk.HealthResponse	"at least one check failed"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store, keys *jwtx.KeySet) http.HandlerFunc {
	probe := func(ctx context.Context) (db, signer error) {
		db = st.Ping(ctx)
		if !keys.IsReady() {
			signer = errNoSigningKeys
		}
		return db, signer
	}

	return func(w http.ResponseWriter, r *http.Request) {
		dbErr, signerErr := probe(r.Context())

		resp := healthResponse(startTime, version, "ok")
		resp.Checks = &authsdk.HealthChecks{
			Database: checkStatus(dbErr),
			Signer:   checkStatus(signerErr),
		}

		code := http.StatusOK
		if dbErr != nil || signerErr != nil {
			resp.Status = "degraded"
			code = http.StatusServiceUnavailable
		}
		httpx.WriteJSON(w, code, resp)
	}
}

func checkStatus(err error) string {
	if err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
