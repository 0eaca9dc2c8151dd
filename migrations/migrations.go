// Package migrations embeds the goose SQL migrations for both SQL backends.
// Each dialect has its own directory because the schemas differ slightly
// (uuid/timestamptz types on PostgreSQL, TEXT/TIMESTAMP on SQLite).
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Postgres returns the migration set for the PostgreSQL backend.
func Postgres() fs.FS {
	sub, err := fs.Sub(files, "postgres")
	if err != nil {
		panic(err)
	}
	return sub
}

// SQLite returns the migration set for the embedded SQLite backend.
func SQLite() fs.FS {
	sub, err := fs.Sub(files, "sqlite")
	if err != nil {
		panic(err)
	}
	return sub
}
