package inkwell

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreatePost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/posts", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req CreatePostRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Hello", req.Title)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Post{ID: 1, Title: req.Title, Content: req.Content})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	post, err := client.CreatePost(context.Background(), &CreatePostRequest{
		UserID:  "9f1b6c1e-0000-0000-0000-000000000001",
		Title:   "Hello",
		Content: "<p>world</p>",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), post.ID)
	assert.Equal(t, "Hello", post.Title)
}

func TestClient_SemanticSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/posts/search/semantic", r.URL.Path)

		var req SemanticSearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "tomatoes", req.Query)
		assert.Equal(t, 5, req.TopK)

		_ = json.NewEncoder(w).Encode(SemanticSearchResponse{
			Results: []SearchResult{{PostID: 7, Title: "Gardening", Score: 0.91}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	resp, err := client.SemanticSearch(context.Background(), &SemanticSearchRequest{Query: "tomatoes", TopK: 5})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, int64(7), resp.Results[0].PostID)
}

func TestClient_EmbedPost(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/embed-post", r.URL.Path)
			_ = json.NewEncoder(w).Encode(EmbedPostResponse{Success: true})
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key")
		err := client.EmbedPost(context.Background(), &EmbedPostRequest{PostID: 42, Content: "hello"})
		assert.NoError(t, err)
	})

	t.Run("server error surfaces status and body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(EmbedPostResponse{Error: "Missing postId or content"})
		}))
		defer server.Close()

		client := NewClientWithOptions(ClientOptions{BaseURL: server.URL, APIKey: "test-key", RetryMax: 1})
		err := client.EmbedPost(context.Background(), &EmbedPostRequest{PostID: 42})

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Contains(t, apiErr.Body, "Missing postId or content")
	})
}

func TestClient_DeletePost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1/posts/7", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	assert.NoError(t, client.DeletePost(context.Background(), 7))
}

func TestClient_ListPosts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/posts", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))

		_ = json.NewEncoder(w).Encode(ListPostsResponse{
			Data:  []Post{{ID: 1, Title: "Hello"}},
			Total: 1,
			Limit: 10,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	resp, err := client.ListPosts(context.Background(), ListPostsOptions{Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, int64(1), resp.Total)
}

func TestNewClientWithOptions_NormalizesBaseURL(t *testing.T) {
	client := NewClientWithOptions(ClientOptions{BaseURL: "http://localhost:8080/v1/", APIKey: "k"})
	assert.Equal(t, "http://localhost:8080/v1", client.v1URL())
}
