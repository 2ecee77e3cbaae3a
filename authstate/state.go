// Package authstate owns the process-wide auth state for one user agent: the
// session, the derived user, the admin flag, and the loading flag. The Store
// is the single writer; everything else reads snapshots or subscribes.
package authstate

import (
	"context"

	"github.com/user/signalforge-go/account"
	"github.com/user/signalforge-go/apperror"
	"github.com/user/signalforge-go/profiles"
)

// SignOutRedirect is where a caller is sent after signing out. The landing
// page is public, so the redirect can never bounce.
const SignOutRedirect = "/"

// ErrNotAuthenticated signals a contract violation: an operation that
// requires a signed-in user was called without one.
var ErrNotAuthenticated = apperror.NewAuthError("not authenticated", nil)

// State is one observable snapshot of the auth state.
//
// Invariants: User == nil implies IsAdmin == false at every snapshot, and
// IsAdmin is meaningless while IsLoading is true - no access decision may be
// driven by it until loading has finished.
type State struct {
	User      *account.User    `json:"user"`
	Session   *account.Session `json:"session"`
	IsAdmin   bool             `json:"is_admin"`
	IsLoading bool             `json:"is_loading"`
}

// Authenticated reports whether a user is present.
func (s State) Authenticated() bool {
	return s.User != nil
}

// RoleResolver answers whether a user id carries the admin flag. It is
// expected to be fail-closed: errors resolve to false inside the resolver.
// Implemented by *profiles.Resolver.
type RoleResolver interface {
	IsAdmin(ctx context.Context, userID string) bool
}

// ProfileWriter persists self-service profile updates.
// Implemented by *profiles.Service.
type ProfileWriter interface {
	UpdateSelf(ctx context.Context, userID string, upd profiles.Update) (*profiles.Profile, error)
}
