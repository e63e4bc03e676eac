// Package config resolves campusdesk settings from the environment and an
// optional .env file. Process environment wins over the file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/naveenspark/campusdesk/internal/logging"
	"github.com/naveenspark/campusdesk/pkg/client"
	"github.com/naveenspark/campusdesk/pkg/session"
)

// Environment variables.
const (
	EnvEnvFile    = "CAMPUSDESK_ENV_FILE"
	EnvAPIBaseURL = "CAMPUSDESK_API_BASE_URL"
	EnvWebURL     = "CAMPUSDESK_WEB_URL"
	EnvTokenStore = "CAMPUSDESK_TOKEN_STORE"
	EnvTokenPath  = "CAMPUSDESK_TOKEN_PATH"
	EnvTimeout    = "CAMPUSDESK_TIMEOUT"
	EnvLogLevel   = "CAMPUSDESK_LOG_LEVEL"
	EnvLogFile    = "CAMPUSDESK_LOG_FILE"
)

// Token store backends.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

const (
	defaultEnvFile = ".env"
	defaultTimeout = 30 * time.Second
)

// Config is the resolved console configuration.
type Config struct {
	APIBaseURL   string
	WebURL       string
	ServiceRoots map[client.Service]string
	TokenStore   string
	TokenPath    string
	Timeout      time.Duration
	LogLevel     slog.Level
	LogFile      string
}

// Load reads the process environment plus the .env file named by
// CAMPUSDESK_ENV_FILE (default ./.env). A missing default file is ignored;
// a missing file that was asked for explicitly is an error.
func Load() (Config, error) {
	path := os.Getenv(EnvEnvFile)
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	fileVars, err := godotenv.Read(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config.Load: read %s: %w", path, err)
		}
		fileVars = nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return FromLookup(func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return fileVars[key]
	}, filepath.Join(home, ".campusdesk"))
}

// FromLookup builds a Config from lookup. dataDir holds the default token
// and log files.
func FromLookup(lookup func(string) string, dataDir string) (Config, error) {
	get := func(key string) string { return strings.TrimSpace(lookup(key)) }

	cfg := Config{
		APIBaseURL:   get(EnvAPIBaseURL),
		WebURL:       get(EnvWebURL),
		ServiceRoots: make(map[client.Service]string),
		TokenStore:   strings.ToLower(get(EnvTokenStore)),
		TokenPath:    get(EnvTokenPath),
		Timeout:      defaultTimeout,
		LogLevel:     logging.ParseLevel(get(EnvLogLevel)),
		LogFile:      get(EnvLogFile),
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = client.DefaultBaseURL
	}
	if cfg.WebURL == "" {
		cfg.WebURL = cfg.APIBaseURL
	}
	for _, s := range client.Services {
		if root := get(ServiceEnv(s)); root != "" {
			cfg.ServiceRoots[s] = root
		}
	}

	switch cfg.TokenStore {
	case "":
		cfg.TokenStore = StoreFile
	case StoreFile, StoreSQLite, StoreMemory:
	default:
		return Config{}, fmt.Errorf("config: %s=%q: want file, sqlite or memory", EnvTokenStore, cfg.TokenStore)
	}
	if cfg.TokenPath == "" {
		switch cfg.TokenStore {
		case StoreFile:
			cfg.TokenPath = filepath.Join(dataDir, "token")
		case StoreSQLite:
			cfg.TokenPath = filepath.Join(dataDir, "session.db")
		}
	}

	if raw := get(EnvTimeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("config: %s=%q: want a positive duration like 30s", EnvTimeout, raw)
		}
		cfg.Timeout = d
	}

	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(dataDir, "debug.log")
	} else if strings.EqualFold(cfg.LogFile, "off") {
		cfg.LogFile = ""
	}
	return cfg, nil
}

// ServiceEnv returns the variable that overrides the root URL of s,
// e.g. CAMPUSDESK_STAFF_URL.
func ServiceEnv(s client.Service) string {
	return "CAMPUSDESK_" + strings.ToUpper(string(s)) + "_URL"
}

// Endpoints returns the service roots: derived from APIBaseURL, with any
// per-service overrides applied.
func (c Config) Endpoints() client.Endpoints {
	e := client.NewEndpoints(c.APIBaseURL)
	for s, root := range c.ServiceRoots {
		e = e.WithRoot(s, root)
	}
	return e
}

// OpenStore opens the configured session store. The returned closer must be
// closed when the console exits.
func (c Config) OpenStore() (session.Store, io.Closer, error) {
	switch c.TokenStore {
	case StoreMemory:
		return session.NewMemory(), nopCloser{}, nil
	case StoreSQLite:
		s, err := session.OpenSQLite(c.TokenPath)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	default:
		s, err := session.OpenFile(c.TokenPath)
		if err != nil {
			return nil, nil, err
		}
		return s, nopCloser{}, nil
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
