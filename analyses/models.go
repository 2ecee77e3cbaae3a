// Package analyses manages market analysis articles: chart breakdowns for a
// pair or asset with a summary and long-form content.
package analyses

import "time"

// Analysis is a published market analysis row.
type Analysis struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Pair      string    `json:"pair"`
	AssetType string    `json:"asset_type"`
	Timeframe string    `json:"timeframe"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Tags      []string  `json:"tags"`
	Date      time.Time `json:"date"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateRequest is the payload for publishing an analysis.
type CreateRequest struct {
	Title     string   `json:"title" validate:"required,max=200"`
	Pair      string   `json:"pair" validate:"required"`
	AssetType string   `json:"asset_type" validate:"required"`
	Timeframe string   `json:"timeframe" validate:"required"`
	Summary   string   `json:"summary" validate:"required"`
	Content   string   `json:"content" validate:"required"`
	Author    string   `json:"author" validate:"required"`
	Tags      []string `json:"tags"`
}

// UpdateRequest carries the mutable analysis fields; nil fields are
// unchanged.
type UpdateRequest struct {
	Title     *string   `json:"title,omitempty" validate:"omitempty,max=200"`
	Pair      *string   `json:"pair,omitempty"`
	AssetType *string   `json:"asset_type,omitempty"`
	Timeframe *string   `json:"timeframe,omitempty"`
	Summary   *string   `json:"summary,omitempty"`
	Content   *string   `json:"content,omitempty"`
	Author    *string   `json:"author,omitempty"`
	Tags      *[]string `json:"tags,omitempty"`
}
