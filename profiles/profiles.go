// Package profiles manages the per-user profile row: display metadata plus
// the is_admin flag, which is the sole authorization signal in the system.
package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/user/signalforge-go/apperror"
	"github.com/user/signalforge-go/db"
)

// Profile is the persisted record keyed one-to-one by user id.
type Profile struct {
	ID        string    `json:"id"`
	Username  *string   `json:"username"`
	FullName  *string   `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Update carries the self-service mutable profile fields. There is knowingly
// no IsAdmin here: privilege is granted out-of-band, never through this path.
type Update struct {
	Username  *string `json:"username,omitempty"`
	FullName  *string `json:"full_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// Service reads and writes profile rows.
type Service struct {
	pool db.Pool
	log  *zap.Logger
}

// NewService constructs the profile service.
func NewService(pool db.Pool, log *zap.Logger) *Service {
	return &Service{pool: pool, log: log}
}

// GetByID fetches the profile row for a user id.
func (s *Service) GetByID(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, full_name, avatar_url, is_admin, created_at, updated_at
		 FROM profiles WHERE id = $1`,
		userID,
	).Scan(&p.ID, &p.Username, &p.FullName, &p.AvatarURL, &p.IsAdmin, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("profile not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get profile", err)
	}
	return &p, nil
}

// UpdateSelf writes the permitted fields of the caller's own profile row.
// is_admin is not reachable from here under any payload.
func (s *Service) UpdateSelf(ctx context.Context, userID string, upd Update) (*Profile, error) {
	var setClauses []string
	var args []any
	argID := 1

	if upd.Username != nil {
		setClauses = append(setClauses, fmt.Sprintf("username = $%d", argID))
		args = append(args, *upd.Username)
		argID++
	}
	if upd.FullName != nil {
		setClauses = append(setClauses, fmt.Sprintf("full_name = $%d", argID))
		args = append(args, *upd.FullName)
		argID++
	}
	if upd.AvatarURL != nil {
		setClauses = append(setClauses, fmt.Sprintf("avatar_url = $%d", argID))
		args = append(args, *upd.AvatarURL)
		argID++
	}
	if len(setClauses) == 0 {
		return nil, apperror.NewBadRequestError("no fields provided for update", nil)
	}
	setClauses = append(setClauses, "updated_at = now()")

	args = append(args, userID)
	query := fmt.Sprintf(
		`UPDATE profiles SET %s WHERE id = $%d
		 RETURNING id, username, full_name, avatar_url, is_admin, created_at, updated_at`,
		strings.Join(setClauses, ", "), argID,
	)

	var p Profile
	err := s.pool.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.Username, &p.FullName, &p.AvatarURL, &p.IsAdmin, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("profile not found", nil)
		}
		if db.IsUniqueViolation(err) {
			return nil, apperror.NewConflictError("username already taken", nil)
		}
		return nil, apperror.NewDatabaseError("failed to update profile", err)
	}
	return &p, nil
}
