package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
debug: true
server:
  host: "0.0.0.0"
  port: 8070
database:
  path: "test.db"
simnet:
  enabled: true
  min_latency: 100ms
  max_latency: 500ms
  write_fail_rate: 0.1
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if !cfg.Debug {
		t.Error("Load() cfg.Debug = false, want true")
	}
	if cfg.Server.Port != 8070 {
		t.Errorf("Load() cfg.Server.Port = %v, want 8070", cfg.Server.Port)
	}
	if cfg.Database.Path != "test.db" {
		t.Errorf("Load() cfg.Database.Path = %v, want test.db", cfg.Database.Path)
	}
	if cfg.Simnet.MinLatency != 100*time.Millisecond {
		t.Errorf("Load() cfg.Simnet.MinLatency = %v, want 100ms", cfg.Simnet.MinLatency)
	}
	if cfg.Simnet.WriteFailRate != 0.1 {
		t.Errorf("Load() cfg.Simnet.WriteFailRate = %v, want 0.1", cfg.Simnet.WriteFailRate)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Server.Port != defaultServerPort {
		t.Errorf("Load() cfg.Server.Port = %v, want %v", cfg.Server.Port, defaultServerPort)
	}
	if cfg.Database.Path != defaultDatabasePath {
		t.Errorf("Load() cfg.Database.Path = %v, want %v", cfg.Database.Path, defaultDatabasePath)
	}
	if cfg.Seed.TargetJobs != defaultTargetJobs {
		t.Errorf("Load() cfg.Seed.TargetJobs = %v, want %v", cfg.Seed.TargetJobs, defaultTargetJobs)
	}
	if cfg.Seed.ChunkSize != defaultSeedChunkSize {
		t.Errorf("Load() cfg.Seed.ChunkSize = %v, want %v", cfg.Seed.ChunkSize, defaultSeedChunkSize)
	}
	if cfg.Simnet.MinLatency != defaultMinLatency {
		t.Errorf("Load() cfg.Simnet.MinLatency = %v, want %v", cfg.Simnet.MinLatency, defaultMinLatency)
	}
	if !cfg.Seed.CandidateSeedingEnabled() {
		t.Error("Load() candidate seeding disabled by default, want enabled")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if cfg.Server.Port != defaultServerPort {
		t.Errorf("Load() cfg.Server.Port = %v, want %v", cfg.Server.Port, defaultServerPort)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9001")
	t.Setenv("DB_PATH", "override.db")
	t.Setenv("SEED_CANDIDATES", "false")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 8070
database:
  path: "file.db"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Server.Port != 9001 {
		t.Errorf("env override: cfg.Server.Port = %v, want 9001", cfg.Server.Port)
	}
	if cfg.Database.Path != "override.db" {
		t.Errorf("env override: cfg.Database.Path = %v, want override.db", cfg.Database.Path)
	}
	if cfg.Seed.CandidateSeedingEnabled() {
		t.Error("env override: candidate seeding enabled, want disabled")
	}
	want := []string{"http://a.test", "http://b.test"}
	if len(cfg.Server.CORSOrigins) != len(want) {
		t.Fatalf("env override: CORSOrigins = %v, want %v", cfg.Server.CORSOrigins, want)
	}
	for i := range want {
		if cfg.Server.CORSOrigins[i] != want[i] {
			t.Errorf("env override: CORSOrigins[%d] = %v, want %v", i, cfg.Server.CORSOrigins[i], want[i])
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(_ *Config) {}, false},
		{"missing host", func(c *Config) { c.Server.Host = "" }, true},
		{"bad port", func(c *Config) { c.Server.Port = -1 }, true},
		{"missing db path", func(c *Config) { c.Database.Path = "" }, true},
		{"negative seed target", func(c *Config) { c.Seed.TargetJobs = -1 }, true},
		{"zero chunk size", func(c *Config) { c.Seed.ChunkSize = 0 }, true},
		{"inverted latency window", func(c *Config) {
			c.Simnet.MinLatency = time.Second
			c.Simnet.MaxLatency = time.Millisecond
		}, true},
		{"fail rate out of range", func(c *Config) { c.Simnet.WriteFailRate = 1.5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			setDefaults(&cfg)
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
