// Package migrations embeds the goose SQL migrations shipped with the server
// binary.
package migrations

import "embed"

// FS holds the SQL migration files, applied with goose at startup when the
// -migrate flag is given.
//
//go:embed *.sql
var FS embed.FS
