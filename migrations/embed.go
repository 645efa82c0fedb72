// Package migrations embeds the SQL schema for the member read model, for
// use by deployment tooling and database tests.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
