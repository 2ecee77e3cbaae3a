// Package signals manages trading signal records: entry, stop loss, take
// profit and lifecycle status for a currency pair.
package signals

import "time"

// Signal statuses. New signals default to StatusActive.
const (
	StatusActive = "ACTIVE"
	StatusTPHit  = "TP HIT"
	StatusSLHit  = "SL HIT"
	StatusClosed = "CLOSED"
)

// Signal directions.
const (
	TypeBuy  = "BUY"
	TypeSell = "SELL"
)

// Signal is a published trading signal row.
type Signal struct {
	ID         string    `json:"id"`
	Pair       string    `json:"pair"`
	Type       string    `json:"type"`
	Entry      string    `json:"entry"`
	StopLoss   string    `json:"stop_loss"`
	TakeProfit string    `json:"take_profit"`
	Status     string    `json:"status"`
	Pips       *int      `json:"pips"`
	Timeframe  string    `json:"timeframe"`
	Date       time.Time `json:"date"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateRequest is the payload for publishing a signal. Status is optional
// and defaults to ACTIVE.
type CreateRequest struct {
	Pair       string `json:"pair" validate:"required"`
	Type       string `json:"type" validate:"required,oneof=BUY SELL"`
	Entry      string `json:"entry" validate:"required"`
	StopLoss   string `json:"stop_loss" validate:"required"`
	TakeProfit string `json:"take_profit" validate:"required"`
	Status     string `json:"status" validate:"omitempty,oneof=ACTIVE 'TP HIT' 'SL HIT' CLOSED"`
	Timeframe  string `json:"timeframe" validate:"required"`
}

// UpdateRequest carries the mutable signal fields; nil fields are unchanged.
type UpdateRequest struct {
	Pair       *string `json:"pair,omitempty"`
	Type       *string `json:"type,omitempty" validate:"omitempty,oneof=BUY SELL"`
	Entry      *string `json:"entry,omitempty"`
	StopLoss   *string `json:"stop_loss,omitempty"`
	TakeProfit *string `json:"take_profit,omitempty"`
	Status     *string `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE 'TP HIT' 'SL HIT' CLOSED"`
	Pips       *int    `json:"pips,omitempty"`
	Timeframe  *string `json:"timeframe,omitempty"`
}
