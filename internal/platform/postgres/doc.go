// Package postgres implements the store interfaces on PostgreSQL using the
// pgx stdlib driver. Driver errors are mapped to the store sentinels at
// this boundary; nothing pgx-specific escapes the package.
package postgres
