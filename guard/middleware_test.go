package guard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/signalforge-go/account"
	"github.com/user/signalforge-go/apperror"
)

type fakeSessions struct {
	sessions map[string]*account.Session
}

func (f *fakeSessions) SessionFromToken(_ context.Context, token string) (*account.Session, error) {
	if sess, ok := f.sessions[token]; ok {
		return sess, nil
	}
	return nil, apperror.NewAuthError("invalid token", nil)
}

type fakeRoles struct {
	admins map[string]bool
}

func (f *fakeRoles) IsAdmin(_ context.Context, userID string) bool {
	return f.admins[userID]
}

func sessionFor(id string) *account.Session {
	return &account.Session{
		AccessToken: "token-" + id,
		TokenType:   "bearer",
		User:        &account.User{ID: id, Email: id + "@example.com"},
	}
}

func newTestMiddleware() *Middleware {
	sessions := &fakeSessions{sessions: map[string]*account.Session{
		"token-regular": sessionFor("regular"),
		"token-admin":   sessionFor("admin"),
	}}
	roles := &fakeRoles{admins: map[string]bool{"admin": true}}
	return NewMiddleware(sessions, roles, zap.NewNop())
}

func okHandler(t *testing.T, wantUserID string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantUserID, user.ID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAdmin_AnonymousRedirectsToLogin(t *testing.T) {
	m := newTestMiddleware()
	h := m.RequireAdmin(okHandler(t, "admin"))

	req := httptest.NewRequest(http.MethodGet, "/admin/signals", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?from=%2Fadmin%2Fsignals", rec.Header().Get("Location"))
}

func TestRequireAdmin_NonAdminRedirectsHome(t *testing.T) {
	m := newTestMiddleware()
	h := m.RequireAdmin(okHandler(t, "admin"))

	req := httptest.NewRequest(http.MethodGet, "/admin/signals", nil)
	req.Header.Set("Authorization", "Bearer token-regular")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, "admin access required", rec.Header().Get(NoticeHeader))
}

func TestRequireAdmin_AdminPasses(t *testing.T) {
	m := newTestMiddleware()
	h := m.RequireAdmin(okHandler(t, "admin"))

	req := httptest.NewRequest(http.MethodGet, "/admin/signals", nil)
	req.Header.Set("Authorization", "Bearer token-admin")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireUser_SignedInNonAdminPasses(t *testing.T) {
	m := newTestMiddleware()
	h := m.RequireUser(okHandler(t, "regular"))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer token-regular")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireUser_InvalidTokenFailsClosed(t *testing.T) {
	m := newTestMiddleware()
	h := m.RequireUser(okHandler(t, "regular"))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?from=%2Fdashboard", rec.Header().Get("Location"))
}

func TestRequireUser_SessionCookieAccepted(t *testing.T) {
	m := newTestMiddleware()
	h := m.RequireUser(okHandler(t, "regular"))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: account.SessionCookie, Value: "token-regular"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminLayout_SameDecisionsAsRedirectGuard(t *testing.T) {
	m := newTestMiddleware()
	h := m.AdminLayout(okHandler(t, "admin"))

	// Anonymous: moved to login, nothing rendered.
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?from=%2Fadmin", rec.Header().Get("Location"))
	assert.Empty(t, rec.Body.String())

	// Non-admin: moved home, nothing rendered.
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer token-regular")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Empty(t, rec.Body.String())

	// Admin: content renders.
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer token-admin")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
