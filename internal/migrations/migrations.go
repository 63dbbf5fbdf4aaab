// Package migrations embeds the goose migrations that create the store's
// collections. Each engine has its own directory; the schema is identical
// apart from column types.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// Directories of Migrations, per engine.
const (
	SQLiteDir   = "sqlite"
	PostgresDir = "postgres"
)
