// Package context provides request-scoped values extraction.
package context

import (
	"context"
)

// UserContext contains the authenticated account information.
// Every row in the store is scoped to OwnerID.
type UserContext struct {
	OwnerID  int64
	Username string
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}

// GetOwnerID returns the current account ID from context, or 0 when unauthenticated.
func GetOwnerID(ctx context.Context) int64 {
	if u := GetUser(ctx); u != nil {
		return u.OwnerID
	}
	return 0
}

// GetUsername returns the current username from context or empty string.
func GetUsername(ctx context.Context) string {
	if u := GetUser(ctx); u != nil {
		return u.Username
	}
	return ""
}
