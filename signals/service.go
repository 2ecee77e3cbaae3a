package signals

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

const signalColumns = `id, pair, type, entry, stop_loss, take_profit, status, pips,
	timeframe, date, user_id, created_at, updated_at`

// Service owns trading signal persistence.
type Service struct {
	pool db.Pool
	log  *zap.Logger
}

// NewService constructs the signal service.
func NewService(pool db.Pool, log *zap.Logger) *Service {
	return &Service{pool: pool, log: log}
}

// List returns all signals, newest first.
func (s *Service) List(ctx context.Context) ([]Signal, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+signalColumns+` FROM trading_signals ORDER BY created_at DESC`)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list signals", err)
	}
	defer rows.Close()

	var out []Signal
	for rows.Next() {
		var sig Signal
		if err := scanSignal(rows, &sig); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan signal", err)
		}
		out = append(out, sig)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read signals", err)
	}
	return out, nil
}

// Get returns one signal by id.
func (s *Service) Get(ctx context.Context, id string) (*Signal, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+signalColumns+` FROM trading_signals WHERE id = $1`, id)

	var sig Signal
	if err := scanSignal(row, &sig); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("signal not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get signal", err)
	}
	return &sig, nil
}

// Create inserts a signal owned by userID. An empty status defaults to
// ACTIVE.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*Signal, error) {
	status := req.Status
	if status == "" {
		status = StatusActive
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO trading_signals (pair, type, entry, stop_loss, take_profit, status, timeframe, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+signalColumns,
		req.Pair, req.Type, req.Entry, req.StopLoss, req.TakeProfit, status, req.Timeframe, userID,
	)

	var sig Signal
	if err := scanSignal(row, &sig); err != nil {
		return nil, apperror.NewDatabaseError("failed to create signal", err)
	}
	s.log.Info("signal created", zap.String("id", sig.ID), zap.String("pair", sig.Pair))
	return &sig, nil
}

// Update patches the provided fields of a signal.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Signal, error) {
	var setClauses []string
	var args []any
	argID := 1

	add := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}

	if req.Pair != nil {
		add("pair", *req.Pair)
	}
	if req.Type != nil {
		add("type", *req.Type)
	}
	if req.Entry != nil {
		add("entry", *req.Entry)
	}
	if req.StopLoss != nil {
		add("stop_loss", *req.StopLoss)
	}
	if req.TakeProfit != nil {
		add("take_profit", *req.TakeProfit)
	}
	if req.Status != nil {
		add("status", *req.Status)
	}
	if req.Pips != nil {
		add("pips", *req.Pips)
	}
	if req.Timeframe != nil {
		add("timeframe", *req.Timeframe)
	}
	if len(setClauses) == 0 {
		return nil, apperror.NewBadRequestError("no fields provided for update", nil)
	}
	setClauses = append(setClauses, "updated_at = now()")

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE trading_signals SET %s WHERE id = $%d RETURNING `+signalColumns,
		strings.Join(setClauses, ", "), argID,
	)

	row := s.pool.QueryRow(ctx, query, args...)
	var sig Signal
	if err := scanSignal(row, &sig); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("signal not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to update signal", err)
	}
	return &sig, nil
}

// Delete removes a signal by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM trading_signals WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDatabaseError("failed to delete signal", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("signal not found", nil)
	}
	return nil
}

func scanSignal(row pgx.Row, sig *Signal) error {
	return row.Scan(
		&sig.ID, &sig.Pair, &sig.Type, &sig.Entry, &sig.StopLoss, &sig.TakeProfit,
		&sig.Status, &sig.Pips, &sig.Timeframe, &sig.Date, &sig.UserID,
		&sig.CreatedAt, &sig.UpdatedAt,
	)
}
