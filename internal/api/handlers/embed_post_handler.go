// Package handlers contains the HTTP handlers for the public API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/inkwellhq/inkwell/internal/api/response"
	"github.com/inkwellhq/inkwell/internal/apperrors"
)

// IndexingService synchronously embeds and stores a post's content.
type IndexingService interface {
	IndexPost(ctx context.Context, postID int64, content string) error
}

// EmbedPostHandler handles direct (synchronous) embedding requests. Editor
// integrations call this endpoint after saving a draft externally; post
// creation through POST /v1/posts schedules the same work as a background job
// instead.
type EmbedPostHandler struct {
	indexing IndexingService
}

// NewEmbedPostHandler creates a new embed post handler.
func NewEmbedPostHandler(indexing IndexingService) *EmbedPostHandler {
	return &EmbedPostHandler{indexing: indexing}
}

// PostID accepts a JSON string or number and carries the numeric id.
// Clients send both forms, so both must parse.
type PostID struct {
	value int64
	set   bool
}

// UnmarshalJSON parses a JSON number or a numeric string into the id.
func (p *PostID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("post id: %w", err)
		}

		raw = strings.TrimSpace(s)
		if raw == "" {
			return nil
		}
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("post id %q: %w", raw, err)
	}

	p.value = id
	p.set = true

	return nil
}

// Int64 returns the parsed id and whether one was present.
func (p *PostID) Int64() (int64, bool) {
	return p.value, p.set
}

// embedPostRequest is the body for POST /v1/embed-post.
type embedPostRequest struct {
	PostID  PostID `json:"postId"`  //nolint:tagliatelle // API contract
	Content string `json:"content"` // serialized rich text markup
}

// embedPostResponse is the legacy success/error envelope this endpoint has
// always returned. Existing clients match on these exact fields, so the
// endpoint does not use Problem Details like the rest of the API.
type embedPostResponse struct {
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

const missingFieldsMessage = "Missing postId or content"

// Embed handles POST /v1/embed-post: validates the body, generates the
// embedding, and upserts it. Responds 200 {"success":true} on success,
// 400 on a missing field, 500 on any embedding or storage failure.
func (h *EmbedPostHandler) Embed(w http.ResponseWriter, r *http.Request) {
	var req embedPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("embed post: malformed body", "error", err)
		response.RespondJSON(w, http.StatusBadRequest, embedPostResponse{Error: missingFieldsMessage})

		return
	}

	postID, ok := req.PostID.Int64()
	if !ok || postID <= 0 || strings.TrimSpace(req.Content) == "" {
		response.RespondJSON(w, http.StatusBadRequest, embedPostResponse{Error: missingFieldsMessage})

		return
	}

	if err := h.indexing.IndexPost(r.Context(), postID, req.Content); err != nil {
		logEmbedFailure(postID, err)
		response.RespondJSON(w, http.StatusInternalServerError, embedPostResponse{Error: "Failed to embed post"})

		return
	}

	response.RespondJSON(w, http.StatusOK, embedPostResponse{Success: true})
}

// logEmbedFailure logs with the failure class so operators can tell a model
// server outage from a database misconfiguration. The client always gets the
// same generic 500.
func logEmbedFailure(postID int64, err error) {
	switch {
	case errors.Is(err, apperrors.ErrEmbedding):
		slog.Error("embed post: embedding generation failed", "post_id", postID, "error", err)
	case errors.Is(err, apperrors.ErrAuthorization):
		slog.Error("embed post: store permission denied", "post_id", postID, "error", err)
	case errors.Is(err, apperrors.ErrSchema):
		slog.Error("embed post: store schema mismatch", "post_id", postID, "error", err)
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		slog.Error("embed post: store unavailable", "post_id", postID, "error", err)
	default:
		slog.Error("embed post: failed", "post_id", postID, "error", err)
	}
}
