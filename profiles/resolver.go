package profiles

import (
	"context"

	"go.uber.org/zap"

	"github.com/user/signalforge-go/db"
)

// Resolver answers the single authorization question the system has: is this
// user an admin. It is fail-closed: any failure (network, missing row, scan)
// resolves to false. Ambiguity about privilege must never grant it.
type Resolver struct {
	pool db.Pool
	log  *zap.Logger
}

// NewResolver constructs a role resolver.
func NewResolver(pool db.Pool, log *zap.Logger) *Resolver {
	return &Resolver{pool: pool, log: log}
}

// IsAdmin reports whether the profile row for userID carries is_admin=true.
// Errors are logged and resolved as false, never propagated.
func (r *Resolver) IsAdmin(ctx context.Context, userID string) bool {
	if userID == "" {
		return false
	}

	var isAdmin bool
	err := r.pool.QueryRow(ctx,
		`SELECT is_admin FROM profiles WHERE id = $1`,
		userID,
	).Scan(&isAdmin)
	if err != nil {
		r.log.Warn("role lookup failed, resolving as non-admin",
			zap.String("user_id", userID), zap.Error(err))
		return false
	}
	return isAdmin
}
