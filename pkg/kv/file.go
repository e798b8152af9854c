package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// File stores every key in a single JSON object on disk. Writes go to a
// temporary file that is renamed over the original, so a crash leaves
// either the old or the new contents.
type File struct {
	path string
	mu   sync.Mutex
}

// readForWrite is read, except corrupt contents are dropped so the write
// replaces them. reset reports whether that happened.
func (f *File) readForWrite() (data map[string]string, reset bool, err error) {
	data, err = f.read()
	if errors.Is(err, ErrCorrupt) {
		return make(map[string]string), true, nil
	}
	return data, false, err
}

// NewFile returns a File rooted at path. The file and its directory are
// created on first write.
func NewFile(path string) *File {
	return &File{path: filepath.Clean(path)}
}

func (f *File) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read()
	if err != nil {
		return "", err
	}
	v, ok := data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, _, err := f.readForWrite()
	if err != nil {
		return err
	}
	data[key] = value
	return f.write(data)
}

func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, reset, err := f.readForWrite()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok && !reset {
		return nil
	}
	delete(data, key)
	return f.write(data)
}

// read returns an empty map when the file does not exist yet. A file that is
// not a JSON object of strings is ErrCorrupt.
func (f *File) read() (map[string]string, error) {
	raw, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("kv: read %s: %w", f.path, err)
	}

	data := make(map[string]string)
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, f.path, err)
	}
	return data, nil
}

func (f *File) write(data map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("kv: mkdir: %w", err)
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".kv-*")
	if err != nil {
		return fmt.Errorf("kv: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("kv: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("kv: close: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}
