package migrations

import "embed"

// FS contains embedded PostgreSQL migrations for the result store.
//
//go:embed *.sql
var FS embed.FS
