package account

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestRouter(t *testing.T) (chi.Router, pgxmock.PgxPoolIface, *Service) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	svc := NewService(mock, testAuthConfig(), testOAuthConfig(), NewFeed(), zap.NewNop())
	h := NewHandlers(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Route("/auth", h.RegisterRoutes)
	return r, mock, svc
}

func TestHandlers_Register(t *testing.T) {
	r, mock, _ := newTestRouter(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("trader@example.com", pgxmock.AnyArg(), "Jane Trader").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("user-1", time.Now()))
	mock.ExpectExec(`INSERT INTO profiles`).
		WithArgs("user-1", "trader", "Jane Trader").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	body := `{"email":"trader@example.com","password":"password123","full_name":"Jane Trader"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user-1"`)
}

func TestHandlers_Register_RejectsInvalidBody(t *testing.T) {
	r, _, _ := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing email", `{"password":"password123"}`},
		{"short password", `{"email":"a@b.com","password":"short"}`},
		{"unknown field", `{"email":"a@b.com","password":"password123","is_admin":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandlers_Login_SetsCookie(t *testing.T) {
	r, mock, _ := newTestRouter(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	mock.ExpectQuery(`SELECT id, email, password, full_name, avatar_url, created_at`).
		WithArgs("trader@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password", "full_name", "avatar_url", "created_at"}).
			AddRow("user-1", "trader@example.com", string(hashed), "", "", time.Now()))

	body := `{"email":"trader@example.com","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "access_token")

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestHandlers_Login_BadCredentials(t *testing.T) {
	r, mock, _ := newTestRouter(t)

	mock.ExpectQuery(`SELECT id, email, password, full_name, avatar_url, created_at`).
		WithArgs("trader@example.com").
		WillReturnError(pgx.ErrNoRows)

	body := `{"email":"trader@example.com","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid email or password")
}

func TestHandlers_Logout_ClearsCookie(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestHandlers_OAuthBegin(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/oauth/google", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "accounts.example.com")

	req = httptest.NewRequest(http.MethodGet, "/auth/oauth/github", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlers_OAuthCallback_Success(t *testing.T) {
	r, mock, svc := newTestRouter(t)

	mock.ExpectQuery(`UPDATE oauth_codes`).
		WithArgs("code-1").
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow("user-1"))
	mock.ExpectQuery(`SELECT id, email, full_name, avatar_url, created_at`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "full_name", "avatar_url", "created_at"}).
			AddRow("user-1", "trader@example.com", "", "", time.Now()))

	// the sign-in must also reach feed subscribers
	_, events := svc.Feed().Subscribe()

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=code-1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, SessionCookie, cookies[0].Name)

	select {
	case ev := <-events:
		assert.Equal(t, EventSignedIn, ev.Type)
		assert.Equal(t, "user-1", ev.UserID)
	case <-time.After(time.Second):
		t.Fatal("no sign-in event published")
	}
}

func TestHandlers_OAuthCallback_MissingCode(t *testing.T) {
	r, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestHandlers_OAuthCallback_BadCode(t *testing.T) {
	r, mock, _ := newTestRouter(t)

	mock.ExpectQuery(`UPDATE oauth_codes`).
		WithArgs("stale").
		WillReturnError(pgx.ErrNoRows)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=stale", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	// failure lands on login, never an error page
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}
