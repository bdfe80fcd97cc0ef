package config

import (
	"errors"
	"time"
)

const (
	defaultServerPort    = 8060
	defaultServerTimeout = 30 * time.Second
	defaultDatabasePath  = "hirepipe.db"
	defaultRedisAddress  = "localhost:6379"

	defaultTargetJobs        = 25
	defaultTargetCandidates  = 1000
	defaultTargetAssessments = 3
	defaultSeedChunkSize     = 200

	defaultMinLatency      = 200 * time.Millisecond
	defaultMaxLatency      = 1200 * time.Millisecond
	defaultWriteFailRate   = 0.05
	defaultReorderFailRate = 0.08
)

// Config is the top-level hirepipe configuration.
type Config struct {
	Debug    bool           `env:"APP_DEBUG"  yaml:"debug"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Seed     SeedConfig     `yaml:"seed"`
	Simnet   SimnetConfig   `yaml:"simnet"`
	Redis    RedisConfig    `yaml:"redis"`
}

type ServerConfig struct {
	Host         string        `env:"SERVER_HOST"  yaml:"host"`
	Port         int           `env:"SERVER_PORT"  yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" yaml:"cors_origins"`
}

// DatabaseConfig holds the embedded SQLite store configuration.
type DatabaseConfig struct {
	Path string `env:"DB_PATH" yaml:"path"`
}

// SeedConfig controls the startup seeding targets and behavior.
type SeedConfig struct {
	// AutoSeedCandidates mirrors a persisted user preference: when false,
	// candidate top-up seeding is skipped. Defaults to true; pointer so an
	// explicit false in the file survives defaulting.
	AutoSeedCandidates *bool  `env:"SEED_CANDIDATES"     yaml:"auto_seed_candidates"`
	TargetJobs         int    `yaml:"target_jobs"`
	TargetCandidates   int    `yaml:"target_candidates"`
	TargetAssessments  int    `yaml:"target_assessments"`
	ChunkSize          int    `yaml:"chunk_size"`
	// TopupSchedule is an optional cron expression for re-running the
	// top-up seeding while the server is up. Empty disables it.
	TopupSchedule string `env:"SEED_TOPUP_SCHEDULE" yaml:"topup_schedule"`
}

// CandidateSeedingEnabled reports whether candidate top-up seeding is on.
func (s SeedConfig) CandidateSeedingEnabled() bool {
	return s.AutoSeedCandidates == nil || *s.AutoSeedCandidates
}

// SimnetConfig controls the simulated-network behavior of the API layer:
// artificial latency on every call and random failures on writes.
type SimnetConfig struct {
	Enabled         bool          `env:"SIMNET_ENABLED" yaml:"enabled"`
	MinLatency      time.Duration `yaml:"min_latency"`
	MaxLatency      time.Duration `yaml:"max_latency"`
	WriteFailRate   float64       `yaml:"write_fail_rate"`
	ReorderFailRate float64       `yaml:"reorder_fail_rate"`
}

// RedisConfig holds Redis connection configuration for event publishing.
type RedisConfig struct {
	Address  string `env:"REDIS_ADDRESS"        yaml:"address"`
	Password string `env:"REDIS_PASSWORD"       yaml:"password"`
	DB       int    `env:"REDIS_DB"             yaml:"db"`
	Enabled  bool   `env:"REDIS_EVENTS_ENABLED" yaml:"enabled"` // Feature flag for event publishing
}

func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return errors.New("server.host is required")
	}
	if c.Server.Port <= 0 {
		return errors.New("server.port is required and must be positive")
	}
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	if c.Seed.TargetJobs < 0 || c.Seed.TargetCandidates < 0 || c.Seed.TargetAssessments < 0 {
		return errors.New("seed targets must not be negative")
	}
	if c.Seed.ChunkSize <= 0 {
		return errors.New("seed.chunk_size must be positive")
	}
	if c.Simnet.MinLatency > c.Simnet.MaxLatency {
		return errors.New("simnet.min_latency must not exceed simnet.max_latency")
	}
	if c.Simnet.WriteFailRate < 0 || c.Simnet.WriteFailRate > 1 {
		return errors.New("simnet.write_fail_rate must be in [0, 1]")
	}
	if c.Simnet.ReorderFailRate < 0 || c.Simnet.ReorderFailRate > 1 {
		return errors.New("simnet.reorder_fail_rate must be in [0, 1]")
	}
	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultServerTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultServerTimeout
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"http://localhost:3000"}
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = defaultDatabasePath
	}

	if cfg.Seed.TargetJobs == 0 {
		cfg.Seed.TargetJobs = defaultTargetJobs
	}
	if cfg.Seed.TargetCandidates == 0 {
		cfg.Seed.TargetCandidates = defaultTargetCandidates
	}
	if cfg.Seed.TargetAssessments == 0 {
		cfg.Seed.TargetAssessments = defaultTargetAssessments
	}
	if cfg.Seed.ChunkSize == 0 {
		cfg.Seed.ChunkSize = defaultSeedChunkSize
	}

	if cfg.Simnet.MinLatency == 0 {
		cfg.Simnet.MinLatency = defaultMinLatency
	}
	if cfg.Simnet.MaxLatency == 0 {
		cfg.Simnet.MaxLatency = defaultMaxLatency
	}
	if cfg.Simnet.WriteFailRate == 0 {
		cfg.Simnet.WriteFailRate = defaultWriteFailRate
	}
	if cfg.Simnet.ReorderFailRate == 0 {
		cfg.Simnet.ReorderFailRate = defaultReorderFailRate
	}

	if cfg.Seed.AutoSeedCandidates == nil {
		enabled := true
		cfg.Seed.AutoSeedCandidates = &enabled
	}

	if cfg.Redis.Address == "" {
		cfg.Redis.Address = defaultRedisAddress
	}
	// Note: cfg.Redis.Enabled and cfg.Simnet.Enabled default to false.
}
