package inkwell

import "time"

// Post is one published post.
type Post struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	MediaURLs []string  `json:"media_urls"`
	CreatedAt time.Time `json:"created_at"`
	Tags      []Tag     `json:"tags,omitempty"`
}

// Tag is one content tag.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreatePostRequest is the body for POST /v1/posts.
type CreatePostRequest struct {
	UserID    string   `json:"user_id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	MediaURLs []string `json:"media_urls,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// ListPostsOptions holds pagination and filtering for listing posts.
type ListPostsOptions struct {
	UserID string
	Limit  int
	Offset int
}

// ListPostsResponse is the paged response for listing posts.
type ListPostsResponse struct {
	Data   []Post `json:"data"`
	Total  int64  `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// SemanticSearchRequest is the body for POST /v1/posts/search/semantic.
type SemanticSearchRequest struct {
	Query    string  `json:"query"`
	TopK     int     `json:"topK,omitempty"`     //nolint:tagliatelle // API contract
	MinScore float64 `json:"minScore,omitempty"` //nolint:tagliatelle // API contract
}

// SearchResult is one semantic search hit.
type SearchResult struct {
	PostID int64   `json:"postId"` //nolint:tagliatelle // API contract
	Score  float64 `json:"score"`
	Title  string  `json:"title"`
}

// SemanticSearchResponse is the response for semantic search.
type SemanticSearchResponse struct {
	Results []SearchResult `json:"results"`
}

// EmbedPostRequest is the body for POST /v1/embed-post. PostID may be sent
// as a string by some clients; the server accepts both.
type EmbedPostRequest struct {
	PostID  int64  `json:"postId"` //nolint:tagliatelle // API contract
	Content string `json:"content"`
}

// EmbedPostResponse is the legacy envelope returned by POST /v1/embed-post.
type EmbedPostResponse struct {
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// EnsureProfileRequest is the body for POST /v1/profiles/ensure.
type EnsureProfileRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}

// Profile is one user's public profile and gamification state.
type Profile struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	FullName       *string    `json:"full_name"`
	AvatarURL      *string    `json:"avatar_url"`
	Bio            *string    `json:"bio"`
	Points         int        `json:"points"`
	Level          int        `json:"level"`
	FollowersCount int        `json:"followers_count"`
	LastSeen       *time.Time `json:"last_seen"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
