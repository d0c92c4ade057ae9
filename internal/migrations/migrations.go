// Package migrations embeds the goose SQL migrations applied to the local
// snippet database on startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
