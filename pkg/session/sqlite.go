package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const opTimeout = 5 * time.Second

// SQLite is a Store that keeps the token in a one-row key/value table. It
// suits hosts where the console shares a profile database with other tools.
type SQLite struct {
	db    *sql.DB
	mu    sync.RWMutex
	token string
}

// OpenSQLite opens (or creates) the database at dbPath and loads the stored
// token. Use ":memory:" for a throwaway database.
func OpenSQLite(dbPath string) (*SQLite, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, errors.New("session.OpenSQLite: empty database path")
	}
	if dbPath != ":memory:" {
		if parent := filepath.Dir(dbPath); parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0700); err != nil {
				return nil, fmt.Errorf("session.OpenSQLite: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("session.OpenSQLite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	for _, stmt := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("session.OpenSQLite: %w", err)
		}
	}

	s := &SQLite{db: db}
	err = db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, Key).Scan(&s.token)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		_ = db.Close()
		return nil, fmt.Errorf("session.OpenSQLite: load token: %w", err)
	}
	return s, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *SQLite) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		Key, token, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("session.SQLite.Set: %w", err)
	}
	return nil
}

func (s *SQLite) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, Key); err != nil {
		return fmt.Errorf("session.SQLite.Clear: %w", err)
	}
	return nil
}
