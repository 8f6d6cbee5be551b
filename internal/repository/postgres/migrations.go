package postgres

import "embed"

// Migrations holds the goose SQL migrations for the dashboard schema.
//
//go:embed migrations/*.sql
var Migrations embed.FS

const MigrationsDir = "migrations"
