// Package config loads runtime configuration for the recordvault command.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables prefixed RECORDVAULT_ (see parseEnv). A .env
//     file in the working directory is loaded first when present.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-e string          database engine: sqlite or postgres
//	-d string          database DSN
//	-w int             concurrent field encrypt/decrypt workers
//	-l string          log level: debug, info, warn, error
//	-log-format string text or json
//	-seed-pages int    pages seeded by the seed command
//	-seed-per-page int records per seeded page
//	-seed-patients int patients seeded by the seed command
//	-b string          S3 bucket for snapshots
//	-g string          S3 region
//	-u string          S3 base endpoint (e.g. "http://127.0.0.1:9000")
//	-prefix string     object key prefix for snapshots
//	-export-timeout    snapshot export/import timeout, e.g. "2m"
//
// The secret and the S3 credentials are deliberately not accepted as flags;
// set them in the JSON file or the environment (RECORDVAULT_SECRET,
// RECORDVAULT_S3_ACCESS_KEY, RECORDVAULT_S3_SECRET_KEY).
//
// # JSON schema
//
//	{
//	  "database_engine": "sqlite",
//	  "database_dsn": "file:data/recordvault.db",
//	  "secret": "user_token",
//	  "workers": 8,
//	  "seed_pages": 10,
//	  "seed_records_per_page": 1000,
//	  "seed_patients": 10,
//	  "patient_page_size": 10,
//	  "log_level": "info",
//	  "log_format": "text",
//	  "s3_bucket": "vault",
//	  "s3_region": "us-east-1",
//	  "s3_base_endpoint": "http://127.0.0.1:9000",
//	  "s3_access_key": "minioadmin",
//	  "s3_secret_key": "minioadmin",
//	  "s3_prefix": "snapshots",
//	  "export_timeout": "2m"
//	}
package config
