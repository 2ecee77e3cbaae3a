package account

import "context"

type contextKey string

const userContextKey contextKey = "guard_user"

// WithUser stores the authenticated user in the request context.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext fetches the authenticated user placed by a guard.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey).(*User)
	return user, ok
}
