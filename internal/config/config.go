package config

import (
	"fmt"
	"runtime"
	"time"

	"github.com/dmitrijs2005/recordvault/internal/dbx"
)

// Config holds runtime settings for the recordvault command.
type Config struct {
	DatabaseEngine string
	DatabaseDSN    string
	// Secret keys the field cipher. Empty means the built-in default.
	Secret string
	// Workers bounds concurrent field encrypt/decrypt calls.
	Workers int

	SeedPages          int
	SeedRecordsPerPage int
	SeedPatients       int
	PatientPageSize    int

	LogLevel  string
	LogFormat string

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
	S3Prefix       string
	ExportTimeout  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseEngine = string(dbx.EngineSQLite)
	c.DatabaseDSN = "file:data/recordvault.db?_pragma=busy_timeout(5000)"
	c.Workers = runtime.NumCPU()
	c.SeedPages = 10
	c.SeedRecordsPerPage = 1000
	c.SeedPatients = 10
	c.PatientPageSize = 10
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.S3Region = "us-east-1"
	c.S3Prefix = "snapshots"
	c.ExportTimeout = 2 * time.Minute
}

// Engine returns the parsed DatabaseEngine.
func (c *Config) Engine() (dbx.Engine, error) {
	return dbx.ParseEngine(c.DatabaseEngine)
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	if _, err := c.Engine(); err != nil {
		return err
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("database dsn is empty")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	if c.SeedPages < 0 || c.SeedRecordsPerPage < 0 || c.SeedPatients < 0 {
		return fmt.Errorf("seed counts must not be negative")
	}
	if c.SeedPatients > 30 {
		// one patient per day of November 2024 keeps created_at distinct
		return fmt.Errorf("seed patients must be <= 30, got %d", c.SeedPatients)
	}
	if c.PatientPageSize < 1 {
		return fmt.Errorf("patient page size must be >= 1, got %d", c.PatientPageSize)
	}
	if c.ExportTimeout <= 0 {
		return fmt.Errorf("export timeout must be positive")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON, the environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
