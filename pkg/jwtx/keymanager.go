package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/aussiebroadwan/matchday/pkg/cryptox"
)

const maxKeys = 10

// KeyManager owns the signing keys of one auth service instance together
// with the KeySet and Verifier built from them.
type KeyManager struct {
	Verifier *EdDSAVerifier
	KeySet   *KeySet

	signers []Signer
}

// KeyManagerOptions configures a KeyManager.
type KeyManagerOptions struct {
	// Issuer is required and checked by the Verifier.
	Issuer string

	// NumKeys is how many keys an ephemeral manager generates. Defaults to 3,
	// capped at 10.
	NumKeys int

	// Leeway tolerates clock skew during verification.
	Leeway time.Duration

	// Now overrides the verifier clock.
	Now func() time.Time
}

// NewEphemeralKeyManager generates fresh keys that only live in memory.
// Every token it issued becomes unverifiable once the process exits.
func NewEphemeralKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	n := opts.NumKeys
	if n <= 0 {
		n = 3
	}
	n = min(n, maxKeys)

	keys := make([]ed25519.PrivateKey, 0, n)
	for range n {
		k, err := cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return NewKeyManager(opts, keys...)
}

// NewKeyManager builds a manager around existing keys. Key ids are the
// RFC 7638 thumbprints so the same key always publishes the same kid.
func NewKeyManager(opts KeyManagerOptions, keys ...ed25519.PrivateKey) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, errors.New("jwtx: Issuer is required")
	}
	if len(keys) == 0 {
		return nil, errors.New("jwtx: at least one signing key is required")
	}

	keyset := NewKeySet()
	signers := make([]Signer, 0, len(keys))
	for i, k := range keys {
		s, err := NewSignerEdDSA("", k)
		if err != nil {
			return nil, fmt.Errorf("jwtx: signer %d: %w", i+1, err)
		}
		if err := keyset.AddSigner(s); err != nil {
			return nil, fmt.Errorf("jwtx: add signer %d: %w", i+1, err)
		}
		signers = append(signers, s)
	}

	vopts := []VerifierOption{WithLeeway(opts.Leeway)}
	if opts.Now != nil {
		vopts = append(vopts, WithTimeFunc(opts.Now))
	}

	return &KeyManager{
		Verifier: NewVerifierEdDSA(keyset, opts.Issuer, vopts...),
		KeySet:   keyset,
		signers:  signers,
	}, nil
}

// IsReady returns true if the KeyManager has valid keys loaded.
func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady()
}

// GetSigner picks one of the signing keys at random.
func (km *KeyManager) GetSigner() Signer {
	if len(km.signers) == 1 {
		return km.signers[0]
	}
	return km.signers[rand.IntN(len(km.signers))]
}

// NumSigners returns the number of active signing keys.
func (km *KeyManager) NumSigners() int {
	return len(km.signers)
}
