// Package session holds the console's bearer token.
//
// A Store keeps zero or one token. It is the only place the token lives:
// the API gateway reads it for every request and is the only writer.
package session

import "sync"

// Key is the slot name the token is stored under.
const Key = "authToken"

// Store holds at most one bearer token.
//
// Set and Clear update the value returned by Token before they persist it, so
// a failed write still leaves the in-process view consistent.
type Store interface {
	// Token returns the stored token, or false when no session is present.
	Token() (string, bool)
	// Set replaces any stored token.
	Set(token string) error
	// Clear removes the token. Clearing an empty store is a no-op.
	Clear() error
}

// Memory is a Store that lives only as long as the process.
type Memory struct {
	mu    sync.RWMutex
	token string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.token != ""
}

func (m *Memory) Set(token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *Memory) Clear() error {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	return nil
}
