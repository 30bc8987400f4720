package auth

import (
	"context"
)

// contextKey is a private type for context keys, preventing collisions with
// keys from other packages.
type contextKey string

const identityContextKey contextKey = "auth_identity"

// NewContextWithIdentity returns a child context carrying the identity.
// The identity travels explicitly through the request context; there is no
// process-wide current-user state.
func NewContextWithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext extracts the identity stored by the middleware.
// It returns nil for anonymous requests and for requests that never passed
// through the identity middleware.
func IdentityFromContext(ctx context.Context) *Identity {
	identity, ok := ctx.Value(identityContextKey).(*Identity)
	if !ok {
		return nil
	}
	return identity
}
