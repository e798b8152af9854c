package authsdk

import (
	"context"
	"net/http"
)

// GetJWKS retrieves the public keys the service signs session tokens with.
func (c *SDKClient) GetJWKS(ctx context.Context) (*JWKSResponse, error) {
	resp, err := c.doRequest(ctx, "jwks", http.MethodGet, "/.well-known/jwks.json", "", nil)
	if err != nil {
		return nil, err
	}

	var jwks JWKSResponse
	if err := decodeJSON("jwks", resp, &jwks, http.StatusOK); err != nil {
		return nil, err
	}
	return &jwks, nil
}
