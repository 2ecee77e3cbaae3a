package guard

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/user/signalforge-go/account"
	"github.com/user/signalforge-go/authstate"
)

// WithUser stores the authenticated user in the request context.
func WithUser(ctx context.Context, user *account.User) context.Context {
	return account.WithUser(ctx, user)
}

// UserFromContext fetches the authenticated user placed by a guard.
func UserFromContext(ctx context.Context) (*account.User, bool) {
	return account.UserFromContext(ctx)
}

// NoticeHeader carries the one-time explanation for an authorization
// redirect, so the target page can surface why the visitor was moved.
const NoticeHeader = "X-Auth-Notice"

// SessionSource resolves an access token to a session.
// Implemented by *account.Service.
type SessionSource interface {
	SessionFromToken(ctx context.Context, accessToken string) (*account.Session, error)
}

// RoleResolver mirrors authstate.RoleResolver for per-request use.
type RoleResolver interface {
	IsAdmin(ctx context.Context, userID string) bool
}

// Middleware builds route guards that evaluate the decision machine against
// a per-request auth-state snapshot.
type Middleware struct {
	sessions SessionSource
	roles    RoleResolver
	log      *zap.Logger
}

// NewMiddleware constructs the guard middleware.
func NewMiddleware(sessions SessionSource, roles RoleResolver, log *zap.Logger) *Middleware {
	return &Middleware{sessions: sessions, roles: roles, log: log}
}

// resolveState builds the request's auth-state snapshot. Resolution is
// fail-closed at both steps: an unresolvable token means no user, and a
// failed role lookup means no privilege. The snapshot is fully resolved, so
// IsLoading is false by construction.
func (m *Middleware) resolveState(r *http.Request) authstate.State {
	state := authstate.State{}

	token := account.TokenFromRequest(r)
	if token == "" {
		return state
	}

	sess, err := m.sessions.SessionFromToken(r.Context(), token)
	if err != nil || sess == nil || sess.User == nil {
		if err != nil {
			m.log.Debug("session resolution failed", zap.Error(err))
		}
		return state
	}

	state.User = sess.User
	state.Session = sess
	state.IsAdmin = m.roles.IsAdmin(r.Context(), sess.User.ID)
	return state
}

// RequireUser is the redirect-guard for routes that need a signed-in user.
func (m *Middleware) RequireUser(next http.Handler) http.Handler {
	return m.redirectGuard(next, false)
}

// RequireAdmin is the redirect-guard for admin-only routes.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return m.redirectGuard(next, true)
}

func (m *Middleware) redirectGuard(next http.Handler, requireAdmin bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := m.resolveState(r)

		switch Evaluate(state, requireAdmin) {
		case DecisionPending:
			// never redirect while loading
			writeLoadingPlaceholder(w)
		case DecisionRedirectLogin:
			http.Redirect(w, r, LoginRedirectURL(r.URL.RequestURI()), http.StatusSeeOther)
		case DecisionRedirectHome:
			w.Header().Set(NoticeHeader, "admin access required")
			http.Redirect(w, r, HomeRoute, http.StatusSeeOther)
		case DecisionAuthorized:
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), state.User)))
		}
	})
}

// AdminLayout is the layout-guard variant used for admin page shells. The
// decisions are identical to RequireAdmin; it differs only in that it renders
// nothing of its own while unauthorized and moves the visitor as a mount-time
// side effect. What the visitor ultimately sees is the same.
func (m *Middleware) AdminLayout(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := m.resolveState(r)

		switch Evaluate(state, true) {
		case DecisionPending:
			writeLoadingPlaceholder(w)
		case DecisionRedirectLogin:
			w.Header().Set("Location", LoginRedirectURL(r.URL.RequestURI()))
			w.WriteHeader(http.StatusSeeOther)
		case DecisionRedirectHome:
			w.Header().Set(NoticeHeader, "admin access required")
			w.Header().Set("Location", HomeRoute)
			w.WriteHeader(http.StatusSeeOther)
		case DecisionAuthorized:
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), state.User)))
		}
	})
}

func writeLoadingPlaceholder(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Retry-After", "1")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("<!doctype html><title>Loading</title><p>Resolving session&hellip;</p>"))
}
