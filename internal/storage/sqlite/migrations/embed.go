package migrations

import "embed"

// FS holds the bundled schema migrations.
//
//go:embed *.sql
var FS embed.FS
