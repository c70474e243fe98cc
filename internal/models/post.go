package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is one published post. Immutable after creation except for tag
// associations; rich text is stored as serialized markup in Content.
type Post struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	MediaURLs []string  `json:"media_urls"`
	CreatedAt time.Time `json:"created_at"`
	Tags      []Tag     `json:"tags,omitempty"`
}

// CreatePostRequest is the body for POST /v1/posts.
type CreatePostRequest struct {
	UserID    uuid.UUID `json:"user_id" validate:"required"`
	Title     string    `json:"title" validate:"required,max=200,no_null_bytes"`
	Content   string    `json:"content" validate:"max=100000,no_null_bytes"`
	MediaURLs []string  `json:"media_urls" validate:"max=10,dive,max=2048"`
	Tags      []string  `json:"tags" validate:"max=20,dive,max=64,no_null_bytes"`
}

// ListPostsFilters holds pagination for listing posts (newest first).
// Decoded straight from the query string.
type ListPostsFilters struct {
	UserID *uuid.UUID `form:"user_id"`
	Limit  int        `form:"limit" validate:"gte=0"`
	Offset int        `form:"offset" validate:"gte=0"`
}

// ListPostsResponse is the paged response for listing posts.
type ListPostsResponse struct {
	Data   []Post `json:"data"`
	Total  int64  `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// PostWithScore is one semantic search result: the post id, its cosine
// similarity score (0..1), and the post title for display.
type PostWithScore struct {
	PostID int64   `json:"postId"` //nolint:tagliatelle // API contract
	Score  float64 `json:"score"`
	Title  string  `json:"title"`
}
