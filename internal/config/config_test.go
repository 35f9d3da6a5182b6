package config

import (
	"os"
	"path/filepath"
	"testing"

	"shareit/internal/models"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("SHAREIT_DB_PATH", "expanded.db")

	yamlContent := `
app:
  environment: test
database:
  path: "${SHAREIT_DB_PATH}"
api:
  http:
    port: 8088
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Database.Path != "expanded.db" {
		t.Errorf("expected database path expanded.db, got %s", cfg.Database.Path)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("expected default driver %s, got %s", DriverSQLite, cfg.Database.Driver)
	}
	if cfg.API.HTTP.Port != 8088 {
		t.Errorf("expected http port 8088, got %d", cfg.API.HTTP.Port)
	}
}

func TestLoadConfig_WithEnvFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("database:\n  path: \"${SHAREIT_ENV_DB}\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	if err := os.WriteFile(".env", []byte("SHAREIT_ENV_DB=from_env.db\n"), 0o644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	defer os.Remove(".env")
	defer os.Unsetenv("SHAREIT_ENV_DB")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Database.Path != "from_env.db" {
		t.Errorf("expected database path from .env, got %s", cfg.Database.Path)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "valid sqlite config",
			cfg:     Config{Database: DatabaseConfig{Driver: DriverSQLite, Path: "path"}},
			wantErr: false,
		},
		{
			name:    "missing sqlite path",
			cfg:     Config{Database: DatabaseConfig{Driver: DriverSQLite}},
			wantErr: true,
		},
		{
			name: "valid postgres config",
			cfg: Config{Database: DatabaseConfig{
				Driver:   DriverPostgres,
				Postgres: PostgresConfig{Host: "localhost", DBName: "shareit"},
			}},
			wantErr: false,
		},
		{
			name:    "postgres without host",
			cfg:     Config{Database: DatabaseConfig{Driver: DriverPostgres}},
			wantErr: true,
		},
		{
			name:    "unknown driver",
			cfg:     Config{Database: DatabaseConfig{Driver: "mysql", Path: "x"}},
			wantErr: true,
		},
		{
			name: "cache without redis",
			cfg: Config{
				Database: DatabaseConfig{Driver: DriverSQLite, Path: "path"},
				Cache:    CacheConfig{Enabled: true},
			},
			wantErr: true,
		},
		{
			name: "auth without keys",
			cfg: Config{
				Database: DatabaseConfig{Driver: DriverSQLite, Path: "path"},
				API:      APIConfig{Auth: APIAuthConfig{Enabled: true}},
			},
			wantErr: true,
		},
		{
			name: "auth with blank key",
			cfg: Config{
				Database: DatabaseConfig{Driver: DriverSQLite, Path: "path"},
				API:      APIConfig{Auth: APIAuthConfig{Enabled: true, APIKeys: []APIClientKey{{Name: "ops", Key: " "}}}},
			},
			wantErr: true,
		},
		{
			name: "rate limit with zero window",
			cfg: Config{
				Database: DatabaseConfig{Driver: DriverSQLite, Path: "path"},
				API:      APIConfig{RateLimit: APIRateLimitConfig{Enabled: true, Requests: 10}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("expected default driver %s, got %s", DriverSQLite, cfg.Database.Driver)
	}
	if cfg.API.HTTP.Port != 9090 {
		t.Errorf("expected default http port 9090, got %d", cfg.API.HTTP.Port)
	}
	if cfg.API.GRPC.Port != 9091 {
		t.Errorf("expected default gRPC port 9091, got %d", cfg.API.GRPC.Port)
	}
	if cfg.API.RateLimit.Requests != models.RateLimitRequests {
		t.Errorf("expected default rate limit requests %d, got %d", models.RateLimitRequests, cfg.API.RateLimit.Requests)
	}
	if cfg.Cache.TTLSec != models.DefaultItemCacheTTL {
		t.Errorf("expected default cache ttl %d, got %d", models.DefaultItemCacheTTL, cfg.Cache.TTLSec)
	}
	if cfg.Exports.MaxRows != models.ExportRowLimit {
		t.Errorf("expected default export rows %d, got %d", models.ExportRowLimit, cfg.Exports.MaxRows)
	}
	if cfg.API.Auth.HeaderAPIKey != "x-api-key" {
		t.Errorf("expected default api key header, got %s", cfg.API.Auth.HeaderAPIKey)
	}
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "shareit", SSLMode: "disable"}
	want := "postgres://u:p@db:5432/shareit?sslmode=disable"
	if got := p.DSN(); got != want {
		t.Errorf("DSN() = %s, want %s", got, want)
	}
}
