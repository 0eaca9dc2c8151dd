// Package store defines the persistence interfaces for users and tasks,
// the sentinel errors every backend maps its failures to, and the list
// options shared by all task store implementations.
//
// Three interchangeable backends implement these interfaces: PostgreSQL
// (internal/platform/postgres), embedded SQLite (internal/platform/sqlite)
// and an in-memory map (internal/platform/memory). The contract suite in
// store/storetest verifies they behave identically.
package store
