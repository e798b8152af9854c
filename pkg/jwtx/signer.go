package jwtx

import (
	"crypto/ed25519"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is anything that can mint JWTs and publish its verification key.
type Signer interface {
	KID() string
	Sign(Claims) (string, error)
	PublicJWK() JWK
}

// EdDSASigner signs tokens with an Ed25519 key.
type EdDSASigner struct {
	kid string
	key ed25519.PrivateKey
	pub ed25519.PublicKey
}

// NewSignerEdDSA wraps priv. An empty kid is replaced by the key thumbprint.
func NewSignerEdDSA(kid string, priv ed25519.PrivateKey) (*EdDSASigner, error) {
	if len(priv) != ed25519.PrivateKeySize {
		return nil, errors.New("jwtx: invalid Ed25519 private key size")
	}
	pub := priv.Public().(ed25519.PublicKey)
	if kid == "" {
		kid = Thumbprint(pub)
	}
	return &EdDSASigner{kid: kid, key: priv, pub: pub}, nil
}

func (s *EdDSASigner) KID() string { return s.kid }

// Sign encodes claims with the signer's kid in the header.
func (s *EdDSASigner) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}

func (s *EdDSASigner) PublicJWK() JWK {
	return NewEd25519JWK(s.kid, s.pub)
}
