// Package migrations embeds SQL migration files for goose.
//
// Each storage backend has its own directory because the DDL type names
// differ; the statements applied are otherwise equivalent. Files follow
// the naming convention YYYYMMDDHHMMSS_description.sql and are applied in
// order during startup.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
