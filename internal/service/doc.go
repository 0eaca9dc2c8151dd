// Package service contains the application use cases. It orchestrates
// domain objects, the credential and task stores (internal/store), and the
// auth primitives (internal/service/auth) to fulfill registration, login,
// and task management, translating store sentinels into the stable error
// vocabulary the API layer maps to HTTP status codes.
package service
