package shared

// ContextKey is the key type for values stored in a request context.
type ContextKey string

// UserIDContextKey is the context key under which the authentication
// middleware stores the authenticated user's uuid.UUID.
const UserIDContextKey ContextKey = "userID"
