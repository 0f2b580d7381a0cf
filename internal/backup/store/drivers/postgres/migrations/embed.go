package migrations

import "embed"

// Migrations holds the PostgreSQL schema migrations applied by golang-migrate.
//
//go:embed *.sql
var Migrations embed.FS
