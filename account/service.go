package account

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/signalforge-go/apperror"
	"github.com/user/signalforge-go/config"
	"github.com/user/signalforge-go/db"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims is the JWT payload for both access and refresh tokens.
type Claims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Service is the Postgres-backed credential and session backend.
type Service struct {
	pool  db.Pool
	auth  config.AuthConfig
	oauth config.OAuthConfig
	feed  *Feed
	log   *zap.Logger
}

// NewService constructs the backend service.
func NewService(pool db.Pool, authCfg config.AuthConfig, oauthCfg config.OAuthConfig, feed *Feed, log *zap.Logger) *Service {
	return &Service{pool: pool, auth: authCfg, oauth: oauthCfg, feed: feed, log: log}
}

// Feed exposes the auth-state-change feed clients subscribe to.
func (s *Service) Feed() *Feed { return s.feed }

// Register creates the user row and its profile row in one transaction.
// The profile is created with is_admin=false; registration never grants
// privilege. Registration does not sign the caller in.
func (s *Service) Register(ctx context.Context, email, password, fullName string) (*User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	email = strings.ToLower(strings.TrimSpace(email))

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	user := &User{Email: email, FullName: fullName}
	err = tx.QueryRow(ctx,
		`INSERT INTO users (email, password, full_name)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		email, string(hashed), fullName,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apperror.NewConflictError("an account with this email already exists", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}

	// The profile row mirrors the user id one-to-one; username defaults to
	// the local part of the email and can be changed later.
	username := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		username = email[:at]
	}
	// ON CONFLICT keeps the transaction usable when the username is taken;
	// a raised unique violation would abort it and doom any retry.
	tag, err := tx.Exec(ctx,
		`INSERT INTO profiles (id, username, full_name, is_admin)
		 VALUES ($1, $2, $3, FALSE)
		 ON CONFLICT (username) DO NOTHING`,
		user.ID, username, fullName,
	)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create profile", err)
	}
	if tag.RowsAffected() == 0 {
		// username collision: fall back to the user id so registration
		// never fails on a display name
		if _, err := tx.Exec(ctx,
			`INSERT INTO profiles (id, username, full_name, is_admin)
			 VALUES ($1, $2, $3, FALSE)`,
			user.ID, user.ID, fullName,
		); err != nil {
			return nil, apperror.NewDatabaseError("failed to create profile", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.NewDatabaseError("failed to commit registration", err)
	}

	s.log.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login verifies credentials and issues a fresh session. The error message
// never reveals whether the email or the password was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.getUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewAuthError("invalid email or password", nil)
		}
		s.log.Error("login lookup failed", zap.Error(err))
		return nil, apperror.NewDatabaseError("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.hashedPassword), []byte(password)); err != nil {
		return nil, apperror.NewAuthError("invalid email or password", nil)
	}

	return s.issueSession(user)
}

// Refresh validates a refresh token and issues a new session for its subject.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	claims, err := s.validateToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, apperror.NewAuthError("invalid refresh token", err)
	}

	user, err := s.getUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewAuthError("invalid refresh token", nil)
		}
		return nil, apperror.NewDatabaseError("failed to look up user", err)
	}

	return s.issueSession(user)
}

// SessionFromToken resolves an access token to a live session. Expired or
// malformed tokens yield an auth error, never a partial session.
func (s *Service) SessionFromToken(ctx context.Context, accessToken string) (*Session, error) {
	claims, err := s.validateToken(accessToken, tokenTypeAccess)
	if err != nil {
		return nil, apperror.NewAuthError("invalid session token", err)
	}

	user, err := s.getUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewAuthError("invalid session token", nil)
		}
		return nil, apperror.NewDatabaseError("failed to look up user", err)
	}

	return &Session{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   claims.ExpiresAt.Time,
		User:        user,
	}, nil
}

// UpdateUserMeta writes the permitted display fields of the user record.
func (s *Service) UpdateUserMeta(ctx context.Context, userID string, meta UserMetadata) (*User, error) {
	var setClauses []string
	var args []any
	argID := 1

	if meta.FullName != nil {
		setClauses = append(setClauses, fmt.Sprintf("full_name = $%d", argID))
		args = append(args, *meta.FullName)
		argID++
	}
	if meta.AvatarURL != nil {
		setClauses = append(setClauses, fmt.Sprintf("avatar_url = $%d", argID))
		args = append(args, *meta.AvatarURL)
		argID++
	}
	if len(setClauses) == 0 {
		return nil, apperror.NewBadRequestError("no fields provided for update", nil)
	}

	args = append(args, userID)
	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE id = $%d
		 RETURNING id, email, full_name, avatar_url, created_at`,
		strings.Join(setClauses, ", "), argID,
	)

	var user User
	err := s.pool.QueryRow(ctx, query, args...).Scan(
		&user.ID, &user.Email, &user.FullName, &user.AvatarURL, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("user not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to update user", err)
	}
	return &user, nil
}

// AuthorizeURL builds the external provider's authorization URL. The provider
// round-trip itself happens outside this service; the callback route receives
// the one-time code deposited by the provider bridge.
func (s *Service) AuthorizeURL(provider, redirectTo string) (string, error) {
	if provider != s.oauth.Provider {
		return "", apperror.NewBadRequestError(fmt.Sprintf("unsupported oauth provider %q", provider), nil)
	}

	u, err := url.Parse(s.oauth.AuthorizeURL)
	if err != nil {
		return "", apperror.NewConfigError("invalid oauth authorize URL", err)
	}
	q := u.Query()
	q.Set("client_id", s.oauth.ClientID)
	q.Set("response_type", "code")
	if redirectTo != "" {
		q.Set("redirect_uri", redirectTo)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// IssueOAuthCode mints a one-time exchange code for the given user. The
// provider bridge calls this after a successful external round-trip.
func (s *Service) IssueOAuthCode(ctx context.Context, userID string) (string, error) {
	code := uuid.New().String()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO oauth_codes (code, user_id, provider, expires_at)
		 VALUES ($1, $2, $3, $4)`,
		code, userID, s.oauth.Provider, time.Now().Add(s.oauth.CodeTTL),
	)
	if err != nil {
		return "", apperror.NewDatabaseError("failed to issue oauth code", err)
	}
	return code, nil
}

// ExchangeOAuthCode consumes a pending code and issues a session. A missing,
// expired, or already consumed code is an auth error.
func (s *Service) ExchangeOAuthCode(ctx context.Context, code string) (*Session, error) {
	var userID string
	err := s.pool.QueryRow(ctx,
		`UPDATE oauth_codes
		 SET consumed_at = now()
		 WHERE code = $1 AND consumed_at IS NULL AND expires_at > now()
		 RETURNING user_id`,
		code,
	).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewAuthError("invalid or expired authorization code", nil)
		}
		return nil, apperror.NewDatabaseError("failed to exchange oauth code", err)
	}

	user, err := s.getUserByID(ctx, userID)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to look up user", err)
	}
	return s.issueSession(user)
}

func (s *Service) issueSession(user *User) (*Session, error) {
	accessToken, expiresAt, err := s.signToken(user.ID, tokenTypeAccess, s.auth.AccessTokenDuration)
	if err != nil {
		return nil, apperror.NewInternalError("failed to sign access token", err)
	}
	refreshToken, _, err := s.signToken(user.ID, tokenTypeRefresh, s.auth.RefreshTokenDuration)
	if err != nil {
		return nil, apperror.NewInternalError("failed to sign refresh token", err)
	}

	return &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    expiresAt,
		User:         user,
	}, nil
}

func (s *Service) signToken(userID, tokenType string, duration time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(duration)
	claims := &Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "signalforge",
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.auth.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *Service) validateToken(tokenString, expectedType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.auth.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("invalid token type: expected %s, got %s", expectedType, claims.TokenType)
	}
	return claims, nil
}

func (s *Service) getUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, password, full_name, avatar_url, created_at
		 FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&user.ID, &user.Email, &user.hashedPassword, &user.FullName, &user.AvatarURL, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) getUserByID(ctx context.Context, id string) (*User, error) {
	var user User
	err := s.pool.QueryRow(ctx,
		`SELECT id, email, full_name, avatar_url, created_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Email, &user.FullName, &user.AvatarURL, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SweepExpiredOAuthCodes deletes consumed and expired exchange codes.
// Called by the background janitor.
func (s *Service) SweepExpiredOAuthCodes(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM oauth_codes WHERE expires_at < now() OR consumed_at IS NOT NULL`)
	if err != nil {
		return 0, apperror.NewDatabaseError("failed to sweep oauth codes", err)
	}
	return tag.RowsAffected(), nil
}
