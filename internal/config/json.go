package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/recordvault/internal/flagx"
	"github.com/dmitrijs2005/recordvault/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// ExportTimeout relies on timex.Duration so JSON can hold either "2m" or
// integer nanoseconds.
type JsonConfig struct {
	DatabaseEngine     string         `json:"database_engine"`
	DatabaseDSN        string         `json:"database_dsn"`
	Secret             string         `json:"secret"`
	Workers            int            `json:"workers"`
	SeedPages          int            `json:"seed_pages"`
	SeedRecordsPerPage int            `json:"seed_records_per_page"`
	SeedPatients       int            `json:"seed_patients"`
	PatientPageSize    int            `json:"patient_page_size"`
	LogLevel           string         `json:"log_level"`
	LogFormat          string         `json:"log_format"`
	S3Bucket           string         `json:"s3_bucket"`
	S3Region           string         `json:"s3_region"`
	S3BaseEndpoint     string         `json:"s3_base_endpoint"`
	S3AccessKey        string         `json:"s3_access_key"`
	S3SecretKey        string         `json:"s3_secret_key"`
	S3Prefix           string         `json:"s3_prefix"`
	ExportTimeout      timex.Duration `json:"export_timeout"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Keys missing from the file keep their current value.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.DatabaseEngine, jc.DatabaseEngine)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.Secret, jc.Secret)
	setInt(&cfg.Workers, jc.Workers)
	setInt(&cfg.SeedPages, jc.SeedPages)
	setInt(&cfg.SeedRecordsPerPage, jc.SeedRecordsPerPage)
	setInt(&cfg.SeedPatients, jc.SeedPatients)
	setInt(&cfg.PatientPageSize, jc.PatientPageSize)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.S3Prefix, jc.S3Prefix)
	if jc.ExportTimeout.Duration != 0 {
		cfg.ExportTimeout = jc.ExportTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
