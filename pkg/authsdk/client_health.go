package authsdk

import (
	"context"
	"net/http"
)

// GetLiveness checks if the service is alive.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "livez", "/livez")
}

// GetReadiness checks if the service is ready. A 503 comes back as an error.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "readyz", "/readyz")
}

func (c *SDKClient) health(ctx context.Context, op, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, op, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(op, resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}
