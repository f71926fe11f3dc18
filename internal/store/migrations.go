package store

import "embed"

// Migrations holds the versioned schema applied by cmd/migrate and the test helper.
//
//go:embed migrations/*.sql
var Migrations embed.FS
