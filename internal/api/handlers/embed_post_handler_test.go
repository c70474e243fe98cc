package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell/internal/apperrors"
)

type mockIndexingService struct {
	indexFunc func(ctx context.Context, postID int64, content string) error
	calls     int
	lastID    int64
	lastText  string
}

func (m *mockIndexingService) IndexPost(ctx context.Context, postID int64, content string) error {
	m.calls++
	m.lastID = postID
	m.lastText = content
	if m.indexFunc != nil {
		return m.indexFunc(ctx, postID, content)
	}

	return nil
}

func postEmbed(t *testing.T, handler *EmbedPostHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/embed-post", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.Embed(rec, req)

	return rec
}

func TestEmbedPostHandler_Embed(t *testing.T) {
	t.Run("numeric postId succeeds", func(t *testing.T) {
		svc := &mockIndexingService{}
		rec := postEmbed(t, NewEmbedPostHandler(svc), `{"postId": 42, "content": "<p>hello</p>"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success": true}`, rec.Body.String())
		assert.Equal(t, int64(42), svc.lastID)
		assert.Equal(t, "<p>hello</p>", svc.lastText)
	})

	t.Run("string postId succeeds", func(t *testing.T) {
		svc := &mockIndexingService{}
		rec := postEmbed(t, NewEmbedPostHandler(svc), `{"postId": "42", "content": "hello"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(42), svc.lastID)
	})

	t.Run("missing postId returns 400 before any embedding work", func(t *testing.T) {
		svc := &mockIndexingService{}
		rec := postEmbed(t, NewEmbedPostHandler(svc), `{"content": "hello"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error": "Missing postId or content"}`, rec.Body.String())
		assert.Equal(t, 0, svc.calls)
	})

	t.Run("missing content returns 400 before any embedding work", func(t *testing.T) {
		svc := &mockIndexingService{}
		rec := postEmbed(t, NewEmbedPostHandler(svc), `{"postId": 42}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error": "Missing postId or content"}`, rec.Body.String())
		assert.Equal(t, 0, svc.calls)
	})

	t.Run("blank content returns 400", func(t *testing.T) {
		svc := &mockIndexingService{}
		rec := postEmbed(t, NewEmbedPostHandler(svc), `{"postId": 42, "content": "   "}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, 0, svc.calls)
	})

	t.Run("malformed JSON returns 400", func(t *testing.T) {
		svc := &mockIndexingService{}
		rec := postEmbed(t, NewEmbedPostHandler(svc), `{not json`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, 0, svc.calls)
	})

	t.Run("indexing failure returns generic 500", func(t *testing.T) {
		svc := &mockIndexingService{
			indexFunc: func(context.Context, int64, string) error {
				return apperrors.NewEmbeddingError("embed post content", assert.AnError)
			},
		}
		rec := postEmbed(t, NewEmbedPostHandler(svc), `{"postId": 42, "content": "hello"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"error": "Failed to embed post"}`, rec.Body.String())
	})
}

func TestPostID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantSet bool
		wantErr bool
	}{
		{name: "number", input: `{"postId": 7}`, want: 7, wantSet: true},
		{name: "numeric string", input: `{"postId": "7"}`, want: 7, wantSet: true},
		{name: "padded string", input: `{"postId": " 7 "}`, want: 7, wantSet: true},
		{name: "null", input: `{"postId": null}`, wantSet: false},
		{name: "empty string", input: `{"postId": ""}`, wantSet: false},
		{name: "non-numeric string", input: `{"postId": "abc"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req embedPostRequest
			err := json.Unmarshal([]byte(tt.input), &req)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)

			got, set := req.PostID.Int64()
			assert.Equal(t, tt.wantSet, set)
			if tt.wantSet {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
