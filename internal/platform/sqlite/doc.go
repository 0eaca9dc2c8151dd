// Package sqlite implements the store interfaces on an embedded SQLite
// database file using the pure-Go modernc.org/sqlite driver. It offers the
// same semantics as the PostgreSQL backend without requiring a server.
package sqlite
