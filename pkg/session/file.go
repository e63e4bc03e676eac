package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File is a Store backed by a single file, so the session survives restarts.
// The file is read once on open and cached.
type File struct {
	path  string
	mu    sync.RWMutex
	token string
}

// OpenFile loads the token stored at path. A missing file is an empty store.
func OpenFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("session.OpenFile: empty path")
	}
	f := &File{path: path}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		f.token = strings.TrimSpace(string(data))
	case errors.Is(err, os.ErrNotExist):
		// no session yet
	default:
		return nil, fmt.Errorf("session.OpenFile: %w", err)
	}
	return f, nil
}

func (f *File) Token() (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.token, f.token != ""
}

func (f *File) Set(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token

	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("session.File.Set: create dir: %w", err)
	}
	// Write then rename so a crash never leaves a half-written token.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token), 0600); err != nil {
		return fmt.Errorf("session.File.Set: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp) //nolint:errcheck
		return fmt.Errorf("session.File.Set: %w", err)
	}
	return nil
}

func (f *File) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session.File.Clear: %w", err)
	}
	return nil
}
