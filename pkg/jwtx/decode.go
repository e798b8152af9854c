package jwtx

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// DecodeUnverified reads the claims of token without checking its
// signature or expiry. The client holds no verification keys, so this is
// only good for scheduling decisions; the server still verifies every use.
//
// The token must carry both "exp" and "sub".
func DecodeUnverified(token string) (Claims, error) {
	var c Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if c.ExpiresAt == nil {
		return Claims{}, fmt.Errorf("%w: missing exp", ErrInvalidClaim)
	}
	if c.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing sub", ErrInvalidClaim)
	}
	return c, nil
}
