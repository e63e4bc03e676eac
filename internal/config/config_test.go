package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/naveenspark/campusdesk/pkg/client"
	"github.com/naveenspark/campusdesk/pkg/session"
)

func lookupFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromLookupDefaults(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(nil), "/data")
	if err != nil {
		t.Fatalf("FromLookup() error: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost" {
		t.Errorf("APIBaseURL = %q, want default", cfg.APIBaseURL)
	}
	if cfg.WebURL != cfg.APIBaseURL {
		t.Errorf("WebURL = %q, want it to follow APIBaseURL", cfg.WebURL)
	}
	if cfg.TokenStore != StoreFile {
		t.Errorf("TokenStore = %q, want %q", cfg.TokenStore, StoreFile)
	}
	if cfg.TokenPath != filepath.Join("/data", "token") {
		t.Errorf("TokenPath = %q", cfg.TokenPath)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.LogFile != filepath.Join("/data", "debug.log") {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
}

func TestFromLookupOverrides(t *testing.T) {
	cfg, err := FromLookup(lookupFrom(map[string]string{
		EnvAPIBaseURL:                   "https://campus.example.edu",
		ServiceEnv(client.ServiceStaff): "http://staff.internal:9000",
		EnvTokenStore:                   "SQLite",
		EnvTimeout:                      "5s",
		EnvLogLevel:                     "debug",
		EnvLogFile:                      "off",
	}), "/data")
	if err != nil {
		t.Fatalf("FromLookup() error: %v", err)
	}
	if cfg.TokenStore != StoreSQLite {
		t.Errorf("TokenStore = %q, want %q", cfg.TokenStore, StoreSQLite)
	}
	if cfg.TokenPath != filepath.Join("/data", "session.db") {
		t.Errorf("TokenPath = %q", cfg.TokenPath)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.LogFile != "" {
		t.Errorf("LogFile = %q, want disabled", cfg.LogFile)
	}

	e := cfg.Endpoints()
	if got := e.API(client.ServiceStaff); got != "http://staff.internal:9000/api" {
		t.Errorf("staff API = %q", got)
	}
	if got := e.API(client.ServiceAuth); got != "https://campus.example.edu:8001/api/auth" {
		t.Errorf("auth API = %q", got)
	}
}

func TestFromLookupRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown store", map[string]string{EnvTokenStore: "redis"}},
		{"bad timeout", map[string]string{EnvTimeout: "soon"}},
		{"negative timeout", map[string]string{EnvTimeout: "-1s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromLookup(lookupFrom(tt.env), "/data"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestServiceEnv(t *testing.T) {
	if got := ServiceEnv(client.ServiceCertificates); got != "CAMPUSDESK_CERTIFICATES_URL" {
		t.Errorf("ServiceEnv(certificates) = %q", got)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "campus.env")
	content := "CAMPUSDESK_API_BASE_URL=http://from-file\nCAMPUSDESK_TOKEN_STORE=memory\nCAMPUSDESK_TIMEOUT=7s\n"
	if err := os.WriteFile(envFile, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvEnvFile, envFile)
	t.Setenv(EnvTimeout, "9s") // process env wins over the file

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIBaseURL != "http://from-file" {
		t.Errorf("APIBaseURL = %q, want value from file", cfg.APIBaseURL)
	}
	if cfg.TokenStore != StoreMemory {
		t.Errorf("TokenStore = %q, want %q", cfg.TokenStore, StoreMemory)
	}
	if cfg.Timeout != 9*time.Second {
		t.Errorf("Timeout = %v, want env override 9s", cfg.Timeout)
	}
}

func TestLoadMissingExplicitEnvFile(t *testing.T) {
	t.Setenv(EnvEnvFile, filepath.Join(t.TempDir(), "missing.env"))
	if _, err := Load(); err == nil {
		t.Error("expected error for missing explicit env file")
	}
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()
	for _, kind := range []string{StoreFile, StoreSQLite, StoreMemory} {
		t.Run(kind, func(t *testing.T) {
			cfg := Config{TokenStore: kind, TokenPath: filepath.Join(dir, kind+".slot")}
			store, closer, err := cfg.OpenStore()
			if err != nil {
				t.Fatalf("OpenStore() error: %v", err)
			}
			defer closer.Close() //nolint:errcheck

			if err := store.Set("T1"); err != nil {
				t.Fatalf("Set() error: %v", err)
			}
			if tok, _ := store.Token(); tok != "T1" {
				t.Errorf("Token() = %q, want %q", tok, "T1")
			}
			var _ session.Store = store
		})
	}
}
