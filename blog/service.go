package blog

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

const postColumns = `id, title, excerpt, content, author, category, type, image,
	video_url, read_time, tags, date, user_id, created_at, updated_at`

// Service owns blog post persistence.
type Service struct {
	pool db.Pool
	log  *zap.Logger
}

// NewService constructs the blog service.
func NewService(pool db.Pool, log *zap.Logger) *Service {
	return &Service{pool: pool, log: log}
}

// List returns all posts, newest first.
func (s *Service) List(ctx context.Context) ([]Post, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+postColumns+` FROM blog_posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list posts", err)
	}
	defer rows.Close()

	var out []Post
	for rows.Next() {
		var p Post
		if err := scanPost(rows, &p); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan post", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read posts", err)
	}
	return out, nil
}

// Get returns one post by id.
func (s *Service) Get(ctx context.Context, id string) (*Post, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE id = $1`, id)

	var p Post
	if err := scanPost(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("post not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get post", err)
	}
	return &p, nil
}

// Create inserts a post owned by userID.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*Post, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO blog_posts (title, excerpt, content, author, category, type, image, video_url, read_time, tags, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+postColumns,
		req.Title, req.Excerpt, req.Content, req.Author, req.Category, req.Type,
		req.Image, req.VideoURL, req.ReadTime, req.Tags, userID,
	)

	var p Post
	if err := scanPost(row, &p); err != nil {
		return nil, apperror.NewDatabaseError("failed to create post", err)
	}
	s.log.Info("post created", zap.String("id", p.ID), zap.String("title", p.Title))
	return &p, nil
}

// Update patches the provided fields of a post.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Post, error) {
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
	if req.Excerpt != nil {
		add("excerpt", *req.Excerpt)
	}
	if req.Content != nil {
		add("content", *req.Content)
	}
	if req.Author != nil {
		add("author", *req.Author)
	}
	if req.Category != nil {
		add("category", *req.Category)
	}
	if req.Type != nil {
		add("type", *req.Type)
	}
	if req.Image != nil {
		add("image", *req.Image)
	}
	if req.VideoURL != nil {
		add("video_url", *req.VideoURL)
	}
	if req.ReadTime != nil {
		add("read_time", *req.ReadTime)
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
		`UPDATE blog_posts SET %s WHERE id = $%d RETURNING `+postColumns,
		strings.Join(setClauses, ", "), argID,
	)

	row := s.pool.QueryRow(ctx, query, args...)
	var p Post
	if err := scanPost(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("post not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to update post", err)
	}
	return &p, nil
}

// Delete removes a post by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete post", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("post not found", nil)
	}
	return nil
}

func scanPost(row pgx.Row, p *Post) error {
	return row.Scan(
		&p.ID, &p.Title, &p.Excerpt, &p.Content, &p.Author, &p.Category,
		&p.Type, &p.Image, &p.VideoURL, &p.ReadTime, &p.Tags, &p.Date,
		&p.UserID, &p.CreatedAt, &p.UpdatedAt,
	)
}
