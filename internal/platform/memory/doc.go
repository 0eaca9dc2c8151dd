// Package memory provides in-memory, mutex-guarded implementations of the
// store interfaces. They back tests and ephemeral deployments and satisfy
// the same ownership-scoping and uniqueness contract as the SQL backends.
package memory
