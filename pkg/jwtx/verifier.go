package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrUnknownKID = errors.New("jwtx: unknown kid")
	ErrInvalidSig = errors.New("jwtx: invalid signature")

	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// EdDSAVerifier validates tokens signed by any key in its KeySet.
type EdDSAVerifier struct {
	keys   *KeySet
	issuer string
	leeway time.Duration
	now    func() time.Time
}

// VerifierOption tweaks an EdDSAVerifier.
type VerifierOption func(*EdDSAVerifier)

// WithLeeway tolerates clock skew on exp and nbf.
func WithLeeway(d time.Duration) VerifierOption {
	return func(v *EdDSAVerifier) { v.leeway = d }
}

// WithTimeFunc replaces time.Now, mostly for tests driven by a fake clock.
func WithTimeFunc(now func() time.Time) VerifierOption {
	return func(v *EdDSAVerifier) { v.now = now }
}

func NewVerifierEdDSA(keys *KeySet, issuer string, opts ...VerifierOption) *EdDSAVerifier {
	v := &EdDSAVerifier{keys: keys, issuer: issuer, now: time.Now}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Verify checks signature, issuer and the validity window.
func (v *EdDSAVerifier) Verify(token string) (Claims, error) {
	c, err := v.VerifySignature(token)
	if err != nil {
		return Claims{}, err
	}
	if err := c.ValidateExpiryAt(v.now(), v.leeway); err != nil {
		return Claims{}, err
	}
	return c, nil
}

// VerifySignature checks signature and issuer only. Callers that accept
// expired tokens, such as a refresh endpoint with a grace period, apply
// their own window.
func (v *EdDSAVerifier) VerifySignature(token string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	var c Claims
	_, err := parser.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("%w: missing kid", ErrUnknownKID)
		}
		pub, err := v.keys.Get(kid)
		if err != nil {
			return nil, fmt.Errorf("%w %q", ErrUnknownKID, kid)
		}
		return pub, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, ErrUnknownKID):
		return Claims{}, ErrUnknownKID
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return Claims{}, ErrInvalidSig
	default:
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if err := c.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if c.Subject == "" || c.ExpiresAt == nil {
		return Claims{}, ErrInvalidClaim
	}
	return c, nil
}
