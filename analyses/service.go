package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/user/signalforge-go/apperror"
	"github.com/user/signalforge-go/db"
)

const analysisColumns = `id, title, pair, asset_type, timeframe, summary, content,
	author, tags, date, user_id, created_at, updated_at`

// Service owns market analysis persistence.
type Service struct {
	pool db.Pool
	log  *zap.Logger
}

// NewService constructs the analysis service.
func NewService(pool db.Pool, log *zap.Logger) *Service {
	return &Service{pool: pool, log: log}
}

// List returns all analyses, newest first.
func (s *Service) List(ctx context.Context) ([]Analysis, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+analysisColumns+` FROM market_analysis ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list analyses", err)
	}
	defer rows.Close()

	var out []Analysis
	for rows.Next() {
		var a Analysis
		if err := scanAnalysis(rows, &a); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan analysis", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read analyses", err)
	}
	return out, nil
}

// Get returns one analysis by id.
func (s *Service) Get(ctx context.Context, id string) (*Analysis, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+analysisColumns+` FROM market_analysis WHERE id = $1`, id)

	var a Analysis
	if err := scanAnalysis(row, &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("analysis not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get analysis", err)
	}
	return &a, nil
}

// Create inserts an analysis owned by userID.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*Analysis, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO market_analysis (title, pair, asset_type, timeframe, summary, content, author, tags, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+analysisColumns,
		req.Title, req.Pair, req.AssetType, req.Timeframe, req.Summary,
		req.Content, req.Author, req.Tags, userID,
	)

	var a Analysis
	if err := scanAnalysis(row, &a); err != nil {
		return nil, apperror.NewDatabaseError("failed to create analysis", err)
	}
	s.log.Info("analysis created", zap.String("id", a.ID), zap.String("title", a.Title))
	return &a, nil
}

// Update patches the provided fields of an analysis.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Analysis, error) {
	var setClauses []string
	var args []any
	argID := 1

	add := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Pair != nil {
		add("pair", *req.Pair)
	}
	if req.AssetType != nil {
		add("asset_type", *req.AssetType)
	}
	if req.Timeframe != nil {
		add("timeframe", *req.Timeframe)
	}
	if req.Summary != nil {
		add("summary", *req.Summary)
	}
	if req.Content != nil {
		add("content", *req.Content)
	}
	if req.Author != nil {
		add("author", *req.Author)
	}
	if req.Tags != nil {
		add("tags", *req.Tags)
	}
	if len(setClauses) == 0 {
		return nil, apperror.NewBadRequestError("no fields provided for update", nil)
	}
	setClauses = append(setClauses, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE market_analysis SET %s WHERE id = $%d RETURNING `+analysisColumns,
		strings.Join(setClauses, ", "), argID,
	)

	row := s.pool.QueryRow(ctx, query, args...)
	var a Analysis
	if err := scanAnalysis(row, &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("analysis not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to update analysis", err)
	}
	return &a, nil
}

// Delete removes an analysis by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM market_analysis WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete analysis", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("analysis not found", nil)
	}
	return nil
}

func scanAnalysis(row pgx.Row, a *Analysis) error {
	return row.Scan(
		&a.ID, &a.Title, &a.Pair, &a.AssetType, &a.Timeframe, &a.Summary,
		&a.Content, &a.Author, &a.Tags, &a.Date, &a.UserID,
		&a.CreatedAt, &a.UpdatedAt,
	)
}
