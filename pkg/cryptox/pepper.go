package cryptox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	pepperMu sync.RWMutex
	pepper   string
)

// SetPepper replaces the process-wide pepper appended to every password.
func SetPepper(p string) {
	pepperMu.Lock()
	pepper = p
	pepperMu.Unlock()
}

func currentPepper() string {
	pepperMu.RLock()
	defer pepperMu.RUnlock()
	return pepper
}

// LoadPepper reads the pepper from path, creating the file with a fresh
// random value when it does not exist, and installs it with SetPepper.
func LoadPepper(path string) error {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("pepper dir: %w", err)
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		SetPepper(strings.TrimSpace(string(raw)))
		return nil
	case !os.IsNotExist(err):
		return fmt.Errorf("read pepper: %w", err)
	}

	p, err := GenerateToken(TokenSize256)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(p), 0o600); err != nil {
		return fmt.Errorf("write pepper: %w", err)
	}
	SetPepper(p)
	return nil
}
