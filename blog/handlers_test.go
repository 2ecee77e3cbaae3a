package blog

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/signalforge-go/account"
	"github.com/user/signalforge-go/guard"
)

var postCols = []string{
	"id", "title", "excerpt", "content", "author", "category", "type", "image",
	"video_url", "read_time", "tags", "date", "user_id", "created_at", "updated_at",
}

func postRow(id string) *pgxmock.Rows {
	now := time.Now()
	content := "Long form body"
	readTime := "6 min"
	return pgxmock.NewRows(postCols).
		AddRow(id, "Risk management basics", "Why position sizing matters.", &content,
			"Jane Trader", "Education", TypeArticle, (*string)(nil), (*string)(nil),
			&readTime, []string{"risk"}, now, "user-1", now, now)
}

func newTestHandlers(t *testing.T) (*Handlers, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewHandlers(NewService(mock, zap.NewNop()), zap.NewNop()), mock
}

func TestHandlers_List(t *testing.T) {
	h, mock := newTestHandlers(t)
	r := chi.NewRouter()
	r.Route("/blog", h.RegisterPublicRoutes)

	mock.ExpectQuery(`SELECT .+ FROM blog_posts ORDER BY created_at DESC`).
		WillReturnRows(postRow("post-1"))

	req := httptest.NewRequest(http.MethodGet, "/blog", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Risk management basics")
}

func TestHandlers_List_EmptyIsJSONArray(t *testing.T) {
	h, mock := newTestHandlers(t)
	r := chi.NewRouter()
	r.Route("/blog", h.RegisterPublicRoutes)

	mock.ExpectQuery(`SELECT .+ FROM blog_posts ORDER BY created_at DESC`).
		WillReturnRows(pgxmock.NewRows(postCols))

	req := httptest.NewRequest(http.MethodGet, "/blog", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestHandlers_Create(t *testing.T) {
	h, mock := newTestHandlers(t)
	r := chi.NewRouter()
	// stand in for the admin guard: inject the resolved user directly
	r.Route("/blog", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				ctx := guard.WithUser(req.Context(), &account.User{ID: "user-1"})
				next.ServeHTTP(w, req.WithContext(ctx))
			})
		})
		h.RegisterAdminRoutes(r)
	})

	mock.ExpectQuery(`INSERT INTO blog_posts`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(postRow("post-1"))

	body := `{"title":"Risk management basics","excerpt":"Why position sizing matters.",` +
		`"content":"Long form body","author":"Jane Trader","category":"Education","type":"article"}`
	req := httptest.NewRequest(http.MethodPost, "/blog", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"post-1"`)
}

func TestHandlers_Create_RejectsUnknownType(t *testing.T) {
	h, _ := newTestHandlers(t)
	r := chi.NewRouter()
	r.Route("/blog", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				ctx := guard.WithUser(req.Context(), &account.User{ID: "user-1"})
				next.ServeHTTP(w, req.WithContext(ctx))
			})
		})
		h.RegisterAdminRoutes(r)
	})

	body := `{"title":"t","excerpt":"e","author":"a","category":"c","type":"podcast"}`
	req := httptest.NewRequest(http.MethodPost, "/blog", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
