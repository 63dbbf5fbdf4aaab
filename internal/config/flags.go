package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/recordvault/internal/flagx"
)

// KnownFlags lists every flag consumed by the configuration layer,
// including the JSON file selectors. Commands parse what remains.
var KnownFlags = append([]string{
	"-e", "-d", "-w", "-l", "-log-format",
	"-seed-pages", "-seed-per-page", "-seed-patients",
	"-b", "-g", "-u", "-prefix", "-export-timeout",
}, flagx.ConfigFileFlags...)

// parseFlags populates Config fields from command-line flags. os.Args is
// filtered down to KnownFlags first, so command flags such as -p or -q do
// not reach this flag set.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], KnownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseEngine, "e", cfg.DatabaseEngine, "database engine (sqlite or postgres)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.IntVar(&cfg.Workers, "w", cfg.Workers, "concurrent encrypt/decrypt workers")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (text or json)")
	fs.IntVar(&cfg.SeedPages, "seed-pages", cfg.SeedPages, "pages seeded by the seed command")
	fs.IntVar(&cfg.SeedRecordsPerPage, "seed-per-page", cfg.SeedRecordsPerPage, "records per seeded page")
	fs.IntVar(&cfg.SeedPatients, "seed-patients", cfg.SeedPatients, "patients seeded by the seed command")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3BaseEndpoint, "u", cfg.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&cfg.S3Prefix, "prefix", cfg.S3Prefix, "snapshot key prefix")
	fs.DurationVar(&cfg.ExportTimeout, "export-timeout", cfg.ExportTimeout, "snapshot export/import timeout")

	// registered so the JSON selectors parse cleanly here too
	fs.String("c", "", "path to config file (short)")
	fs.String("config", "", "path to config file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
