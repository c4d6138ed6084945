package repository

import "embed"

// MigrationsFS - встроенные goose-миграции для Postgres-хранилища
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
