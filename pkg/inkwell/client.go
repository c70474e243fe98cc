// Package inkwell is a Go client for the Inkwell API.
package inkwell

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// ClientOptions configures the API client.
type ClientOptions struct {
	// BaseURL is the base URL of the API server, without the /v1 prefix.
	BaseURL string
	// APIKey is the Bearer token for protected endpoints.
	APIKey string
	// RetryMax is the maximum number of retries (default: 3).
	RetryMax int
	// Timeout is the HTTP client timeout (default: 30 seconds).
	Timeout time.Duration
}

// Client is the Inkwell API client.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *retryablehttp.Client
}

// NewClient creates an API client with default settings.
func NewClient(baseURL, apiKey string) *Client {
	return NewClientWithOptions(ClientOptions{BaseURL: baseURL, APIKey: apiKey})
}

// NewClientWithOptions creates an API client with custom options.
func NewClientWithOptions(opts ClientOptions) *Client {
	opts.BaseURL = strings.TrimSuffix(opts.BaseURL, "/")
	opts.BaseURL = strings.TrimSuffix(opts.BaseURL, "/v1")

	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RetryMax == 0 {
		opts.RetryMax = 3
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.RetryMax
	retryClient.HTTPClient.Timeout = opts.Timeout
	retryClient.Logger = nil // disable retryablehttp's own logging

	return &Client{
		baseURL:    opts.BaseURL,
		apiKey:     opts.APIKey,
		httpClient: retryClient,
	}
}

func (c *Client) v1URL() string {
	return c.baseURL + "/v1"
}

// CreatePost publishes a post. Embedding is scheduled server-side after the
// post row is stored.
func (c *Client) CreatePost(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodPost, c.v1URL()+"/posts", req, http.StatusCreated, &post); err != nil {
		return nil, err
	}

	return &post, nil
}

// GetPost fetches one post by id.
func (c *Client) GetPost(ctx context.Context, id int64) (*Post, error) {
	var post Post
	reqURL := fmt.Sprintf("%s/posts/%d", c.v1URL(), id)
	if err := c.do(ctx, http.MethodGet, reqURL, nil, http.StatusOK, &post); err != nil {
		return nil, err
	}

	return &post, nil
}

// ListPosts fetches a page of posts, newest first.
func (c *Client) ListPosts(ctx context.Context, opts ListPostsOptions) (*ListPostsResponse, error) {
	params := url.Values{}
	if opts.UserID != "" {
		params.Add("user_id", opts.UserID)
	}
	if opts.Limit > 0 {
		params.Add("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		params.Add("offset", strconv.Itoa(opts.Offset))
	}

	reqURL := c.v1URL() + "/posts"
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var resp ListPostsResponse
	if err := c.do(ctx, http.MethodGet, reqURL, nil, http.StatusOK, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// DeletePost deletes a post and its search index entry.
func (c *Client) DeletePost(ctx context.Context, id int64) error {
	reqURL := fmt.Sprintf("%s/posts/%d", c.v1URL(), id)

	return c.do(ctx, http.MethodDelete, reqURL, nil, http.StatusNoContent, nil)
}

// SemanticSearch finds posts by meaning rather than exact words.
func (c *Client) SemanticSearch(ctx context.Context, req *SemanticSearchRequest) (*SemanticSearchResponse, error) {
	var resp SemanticSearchResponse
	if err := c.do(ctx, http.MethodPost, c.v1URL()+"/posts/search/semantic", req, http.StatusOK, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// EmbedPost synchronously generates and stores the embedding for a post.
func (c *Client) EmbedPost(ctx context.Context, req *EmbedPostRequest) error {
	var resp EmbedPostResponse
	if err := c.do(ctx, http.MethodPost, c.v1URL()+"/embed-post", req, http.StatusOK, &resp); err != nil {
		return err
	}

	if !resp.Success {
		return fmt.Errorf("embed post: %s", resp.Error)
	}

	return nil
}

// EnsureProfile returns the user's profile, creating it on first sign-in.
func (c *Client) EnsureProfile(ctx context.Context, req *EnsureProfileRequest) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, http.MethodPost, c.v1URL()+"/profiles/ensure", req, http.StatusOK, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// GetProfile fetches one profile by user id.
func (c *Client) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	var profile Profile
	reqURL := c.v1URL() + "/profiles/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, reqURL, nil, http.StatusOK, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// do executes one request and decodes the response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, reqURL string, body any, wantStatus int, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}

		reqBody = bytes.NewReader(encoded)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Error("Failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != wantStatus {
		raw, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			slog.Error("Failed to read error response body", "error", readErr)
		}

		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}
