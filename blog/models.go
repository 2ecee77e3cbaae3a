// Package blog manages the site's editorial posts: articles and videos with
// an excerpt, category and optional media.
package blog

import "time"

// Post content types.
const (
	TypeArticle = "article"
	TypeVideo   = "video"
)

// Post is a published blog post row.
type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Content   *string   `json:"content"`
	Author    string    `json:"author"`
	Category  string    `json:"category"`
	Type      string    `json:"type"`
	Image     *string   `json:"image"`
	VideoURL  *string   `json:"video_url"`
	ReadTime  *string   `json:"read_time"`
	Tags      []string  `json:"tags"`
	Date      time.Time `json:"date"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateRequest is the payload for publishing a post.
type CreateRequest struct {
	Title    string   `json:"title" validate:"required,max=200"`
	Excerpt  string   `json:"excerpt" validate:"required"`
	Content  *string  `json:"content"`
	Author   string   `json:"author" validate:"required"`
	Category string   `json:"category" validate:"required"`
	Type     string   `json:"type" validate:"required,oneof=article video"`
	Image    *string  `json:"image" validate:"omitempty,url"`
	VideoURL *string  `json:"video_url" validate:"omitempty,url"`
	ReadTime *string  `json:"read_time"`
	Tags     []string `json:"tags"`
}

// UpdateRequest carries the mutable post fields; nil fields are unchanged.
type UpdateRequest struct {
	Title    *string   `json:"title,omitempty" validate:"omitempty,max=200"`
	Excerpt  *string   `json:"excerpt,omitempty"`
	Content  *string   `json:"content,omitempty"`
	Author   *string   `json:"author,omitempty"`
	Category *string   `json:"category,omitempty"`
	Type     *string   `json:"type,omitempty" validate:"omitempty,oneof=article video"`
	Image    *string   `json:"image,omitempty" validate:"omitempty,url"`
	VideoURL *string   `json:"video_url,omitempty" validate:"omitempty,url"`
	ReadTime *string   `json:"read_time,omitempty"`
	Tags     *[]string `json:"tags,omitempty"`
}
