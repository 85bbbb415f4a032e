package db

import "embed"

// MigrationFS enthält die SQL-Migrationen aus internal/db/migrations für cmd/migrate.
//
//go:embed migrations/*.sql
var MigrationFS embed.FS
