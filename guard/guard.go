// Package guard protects routes with the auth state. The decision logic is a
// small pure state machine; the HTTP middleware in this package applies it
// per request and performs the redirect side effects.
package guard

import (
	"fmt"
	"net/url"

	"github.com/user/signalforge-go/authstate"
)

// Decision is the outcome of evaluating the guard state machine for one
// auth-state snapshot.
type Decision int

const (
	// DecisionPending means the state is still loading. The guard must not
	// redirect: bouncing a user whose session is still resolving would send
	// an authenticated visitor to the login page.
	DecisionPending Decision = iota
	// DecisionAuthorized renders the protected content.
	DecisionAuthorized
	// DecisionRedirectLogin sends an unauthenticated visitor to the login
	// route, preserving the originally requested path.
	DecisionRedirectLogin
	// DecisionRedirectHome sends an authenticated non-admin to the home
	// route. Never to login: the visitor is signed in, just not privileged.
	DecisionRedirectHome
)

func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionAuthorized:
		return "authorized"
	case DecisionRedirectLogin:
		return "redirect_login"
	case DecisionRedirectHome:
		return "redirect_home"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// LoginRoute and HomeRoute are the guard redirect targets.
const (
	LoginRoute = "/login"
	HomeRoute  = "/"
)

// Evaluate runs the decision machine on one snapshot. A decision is terminal
// for that snapshot; a new snapshot (sign-out while on a protected page)
// re-evaluates and may move an authorized view to a redirect.
func Evaluate(state authstate.State, requireAdmin bool) Decision {
	if state.IsLoading {
		return DecisionPending
	}
	if state.User == nil {
		return DecisionRedirectLogin
	}
	if requireAdmin && !state.IsAdmin {
		return DecisionRedirectHome
	}
	return DecisionAuthorized
}

// LoginRedirectURL builds the login target carrying the originally requested
// path for post-login return.
func LoginRedirectURL(from string) string {
	if from == "" {
		return LoginRoute
	}
	return LoginRoute + "?from=" + url.QueryEscape(from)
}
