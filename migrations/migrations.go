// Package migrations embeds the versioned PostgreSQL schema
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
