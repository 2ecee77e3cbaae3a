package account

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/signalforge-go/apperror"
	"github.com/user/signalforge-go/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "test-secret",
		AccessTokenDuration:  time.Hour,
		RefreshTokenDuration: 24 * time.Hour,
	}
}

func testOAuthConfig() config.OAuthConfig {
	return config.OAuthConfig{
		Provider:     "google",
		ClientID:     "client-123",
		AuthorizeURL: "https://accounts.example.com/o/oauth2/auth",
		CodeTTL:      5 * time.Minute,
	}
}

func newTestService(t *testing.T) (*Service, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	svc := NewService(mock, testAuthConfig(), testOAuthConfig(), NewFeed(), zap.NewNop())
	return svc, mock
}

func TestService_Register(t *testing.T) {
	svc, mock := newTestService(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users \(email, password, full_name\)`).
		WithArgs("trader@example.com", pgxmock.AnyArg(), "Jane Trader").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("user-1", now))
	mock.ExpectExec(`INSERT INTO profiles \(id, username, full_name, is_admin\)`).
		WithArgs("user-1", "trader", "Jane Trader").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	user, err := svc.Register(context.Background(), "Trader@Example.com ", "password123", "Jane Trader")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "trader@example.com", user.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users \(email, password, full_name\)`).
		WithArgs("trader@example.com", pgxmock.AnyArg(), "").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := svc.Register(context.Background(), "trader@example.com", "password123", "")
	require.Error(t, err)
	appErr := apperror.FromError(err)
	assert.Equal(t, apperror.ConflictError, appErr.Type)
	assert.Contains(t, appErr.Message, "already exists")
}

func TestService_Register_UsernameCollisionFallsBack(t *testing.T) {
	svc, mock := newTestService(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("trader@other.com", pgxmock.AnyArg(), "").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("user-2", now))
	mock.ExpectExec(`ON CONFLICT \(username\) DO NOTHING`).
		WithArgs("user-2", "trader", "").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectExec(`INSERT INTO profiles`).
		WithArgs("user-2", "user-2", "").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	user, err := svc.Register(context.Background(), "trader@other.com", "password123", "")
	require.NoError(t, err)
	assert.Equal(t, "user-2", user.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func userRow(t *testing.T, id, email, password string) *pgxmock.Rows {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return pgxmock.NewRows([]string{"id", "email", "password", "full_name", "avatar_url", "created_at"}).
		AddRow(id, email, string(hashed), "Jane Trader", "", time.Now())
}

func TestService_Login(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT id, email, password, full_name, avatar_url, created_at`).
		WithArgs("trader@example.com").
		WillReturnRows(userRow(t, "user-1", "trader@example.com", "password123"))

	sess, err := svc.Login(context.Background(), "trader@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.AccessToken)
	assert.NotEmpty(t, sess.RefreshToken)
	assert.Equal(t, "Bearer", sess.TokenType)
	assert.Equal(t, "user-1", sess.User.ID)
	assert.False(t, sess.Expired())
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT id, email, password, full_name, avatar_url, created_at`).
		WithArgs("trader@example.com").
		WillReturnRows(userRow(t, "user-1", "trader@example.com", "password123"))

	_, err := svc.Login(context.Background(), "trader@example.com", "not-the-password")
	require.Error(t, err)
	assert.Equal(t, "invalid email or password", apperror.FromError(err).Message)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT id, email, password, full_name, avatar_url, created_at`).
		WithArgs("ghost@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	require.Error(t, err)
	// identical message as the wrong-password case
	assert.Equal(t, "invalid email or password", apperror.FromError(err).Message)
}

func TestService_SessionFromToken_Roundtrip(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT id, email, password, full_name, avatar_url, created_at`).
		WithArgs("trader@example.com").
		WillReturnRows(userRow(t, "user-1", "trader@example.com", "password123"))
	sess, err := svc.Login(context.Background(), "trader@example.com", "password123")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, email, full_name, avatar_url, created_at`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "full_name", "avatar_url", "created_at"}).
			AddRow("user-1", "trader@example.com", "Jane Trader", "", time.Now()))

	resolved, err := svc.SessionFromToken(context.Background(), sess.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", resolved.User.ID)
}

func TestService_SessionFromToken_RejectsRefreshToken(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT id, email, password, full_name, avatar_url, created_at`).
		WithArgs("trader@example.com").
		WillReturnRows(userRow(t, "user-1", "trader@example.com", "password123"))
	sess, err := svc.Login(context.Background(), "trader@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.SessionFromToken(context.Background(), sess.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, apperror.AuthError, apperror.FromError(err).Type)
}

func TestService_SessionFromToken_Garbage(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SessionFromToken(context.Background(), "not-a-jwt")
	require.Error(t, err)
	assert.Equal(t, apperror.AuthError, apperror.FromError(err).Type)
}

func TestService_Refresh(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`SELECT id, email, password, full_name, avatar_url, created_at`).
		WithArgs("trader@example.com").
		WillReturnRows(userRow(t, "user-1", "trader@example.com", "password123"))
	sess, err := svc.Login(context.Background(), "trader@example.com", "password123")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, email, full_name, avatar_url, created_at`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "full_name", "avatar_url", "created_at"}).
			AddRow("user-1", "trader@example.com", "Jane Trader", "", time.Now()))

	renewed, err := svc.Refresh(context.Background(), sess.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)
	assert.Equal(t, "user-1", renewed.User.ID)
}

func TestService_AuthorizeURL(t *testing.T) {
	svc, _ := newTestService(t)

	u, err := svc.AuthorizeURL("google", "https://app.example.com/auth/callback")
	require.NoError(t, err)
	assert.Contains(t, u, "https://accounts.example.com/o/oauth2/auth?")
	assert.Contains(t, u, "client_id=client-123")
	assert.Contains(t, u, "response_type=code")

	_, err = svc.AuthorizeURL("github", "")
	require.Error(t, err)
	assert.Equal(t, apperror.BadRequestError, apperror.FromError(err).Type)
}

func TestService_ExchangeOAuthCode(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery(`UPDATE oauth_codes`).
		WithArgs("code-1").
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow("user-1"))
	mock.ExpectQuery(`SELECT id, email, full_name, avatar_url, created_at`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "full_name", "avatar_url", "created_at"}).
			AddRow("user-1", "trader@example.com", "Jane Trader", "", time.Now()))

	sess, err := svc.ExchangeOAuthCode(context.Background(), "code-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", sess.User.ID)
	assert.NotEmpty(t, sess.AccessToken)
}

func TestService_ExchangeOAuthCode_ConsumedOrExpired(t *testing.T) {
	svc, mock := newTestService(t)

	// consumed_at IS NULL AND expires_at > now() filtered the row out
	mock.ExpectQuery(`UPDATE oauth_codes`).
		WithArgs("code-used").
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.ExchangeOAuthCode(context.Background(), "code-used")
	require.Error(t, err)
	assert.Equal(t, apperror.AuthError, apperror.FromError(err).Type)
}

func TestService_SweepExpiredOAuthCodes(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectExec(`DELETE FROM oauth_codes`).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	removed, err := svc.SweepExpiredOAuthCodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
}
