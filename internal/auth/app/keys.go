package app

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aussiebroadwan/matchday/pkg/cryptox"
	"github.com/aussiebroadwan/matchday/pkg/jwtx"
)

// InitAuthKeys builds the KeyManager.
//
// With SigningKeyFile unset, NumKeys keys are generated in memory and every
// token becomes unverifiable when the service restarts. With it set, a
// single Ed25519 key is read from the PEM file, or generated and written
// there on first run, so tokens and the published kid survive restarts.
func InitAuthKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	opts := jwtx.KeyManagerOptions{
		Issuer:  cfg.Issuer,
		NumKeys: cfg.NumKeys,
	}

	if cfg.SigningKeyFile == "" {
		km, err := jwtx.NewEphemeralKeyManager(opts)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize ephemeral key manager: %w", err)
		}
		logger.Info("generated ephemeral signing keys", "num_keys", km.NumSigners(), "issuer", cfg.Issuer)
		logger.Warn("all existing tokens are now invalid due to key rotation on startup")
		return km, nil
	}

	priv, err := loadOrCreateSigningKey(cfg.SigningKeyFile, logger)
	if err != nil {
		return nil, err
	}
	km, err := jwtx.NewKeyManager(opts, priv)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize key manager: %w", err)
	}
	logger.Info("signing key loaded", "path", cfg.SigningKeyFile, "kid", km.GetSigner().KID(), "issuer", cfg.Issuer)
	return km, nil
}

func loadOrCreateSigningKey(path string, logger *slog.Logger) (ed25519.PrivateKey, error) {
	path = filepath.Clean(path)

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		priv, err := cryptox.ParseEd25519Key(raw)
		if err != nil {
			return nil, fmt.Errorf("signing key %s: %w", path, err)
		}
		return priv, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("read signing key: %w", err)
	}

	priv, err := cryptox.GenerateEd25519Key()
	if err != nil {
		return nil, err
	}
	pemBytes, err := cryptox.MarshalEd25519Key(priv)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("signing key dir: %w", err)
	}
	if err := os.WriteFile(path, pemBytes, 0o600); err != nil {
		return nil, fmt.Errorf("write signing key: %w", err)
	}
	logger.Info("generated new signing key", "path", path)
	return priv, nil
}
