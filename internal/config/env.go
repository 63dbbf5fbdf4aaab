package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by parseEnv.
const EnvPrefix = "RECORDVAULT_"

// dotenvFile is loaded into the process environment before parseEnv reads
// it. Variables already set are not overridden.
var dotenvFile = ".env"

// parseEnv overlays Config with RECORDVAULT_* environment variables.
// Panics when a numeric or duration variable cannot be parsed.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	envString(&cfg.DatabaseEngine, "DATABASE_ENGINE")
	envString(&cfg.DatabaseDSN, "DATABASE_DSN")
	envString(&cfg.Secret, "SECRET")
	envInt(&cfg.Workers, "WORKERS")
	envInt(&cfg.SeedPages, "SEED_PAGES")
	envInt(&cfg.SeedRecordsPerPage, "SEED_RECORDS_PER_PAGE")
	envInt(&cfg.SeedPatients, "SEED_PATIENTS")
	envInt(&cfg.PatientPageSize, "PATIENT_PAGE_SIZE")
	envString(&cfg.LogLevel, "LOG_LEVEL")
	envString(&cfg.LogFormat, "LOG_FORMAT")
	envString(&cfg.S3Bucket, "S3_BUCKET")
	envString(&cfg.S3Region, "S3_REGION")
	envString(&cfg.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	envString(&cfg.S3AccessKey, "S3_ACCESS_KEY")
	envString(&cfg.S3SecretKey, "S3_SECRET_KEY")
	envString(&cfg.S3Prefix, "S3_PREFIX")

	if v, ok := os.LookupEnv(EnvPrefix + "EXPORT_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.ExportTimeout = d
	}
}

func envString(dst *string, name string) {
	if v, ok := os.LookupEnv(EnvPrefix + name); ok && v != "" {
		*dst = v
	}
}

func envInt(dst *int, name string) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok || v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(err)
	}
	*dst = n
}
