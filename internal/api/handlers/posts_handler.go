package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/inkwellhq/inkwell/internal/api/response"
	"github.com/inkwellhq/inkwell/internal/api/validation"
	"github.com/inkwellhq/inkwell/internal/apperrors"
	"github.com/inkwellhq/inkwell/internal/models"
)

// PostsService defines the interface for post business logic.
type PostsService interface {
	CreatePost(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error)
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	ListPosts(ctx context.Context, filters *models.ListPostsFilters) (*models.ListPostsResponse, error)
	DeletePost(ctx context.Context, id int64) error
}

// PostsHandler handles HTTP requests for posts.
type PostsHandler struct {
	service PostsService
}

// NewPostsHandler creates a new posts handler.
func NewPostsHandler(service PostsService) *PostsHandler {
	return &PostsHandler{service: service}
}

// Create handles POST /v1/posts.
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondBadRequest(w, "Invalid JSON body")

		return
	}

	if err := validation.ValidateStruct(&req); err != nil {
		validation.RespondValidationError(w, err)

		return
	}

	post, err := h.service.CreatePost(r.Context(), &req)
	if err != nil {
		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			response.RespondUnprocessableEntity(w, validationErr.Message)

			return
		}

		slog.Error("create post failed", "error", err)
		response.RespondInternalServerError(w, "Failed to create post")

		return
	}

	response.RespondJSON(w, http.StatusCreated, post)
}

// Get handles GET /v1/posts/{id}.
func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePostID(w, r)
	if !ok {
		return
	}

	post, err := h.service.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.RespondNotFound(w, "Post not found")

			return
		}

		slog.Error("get post failed", "post_id", id, "error", err)
		response.RespondInternalServerError(w, "Failed to get post")

		return
	}

	response.RespondJSON(w, http.StatusOK, post)
}

// List handles GET /v1/posts with optional user_id, limit, and offset query params.
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := &models.ListPostsFilters{}
	if err := validation.ValidateAndDecodeQueryParams(r, filters); err != nil {
		validation.RespondValidationError(w, err)

		return
	}

	resp, err := h.service.ListPosts(r.Context(), filters)
	if err != nil {
		slog.Error("list posts failed", "error", err)
		response.RespondInternalServerError(w, "Failed to list posts")

		return
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /v1/posts/{id}.
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parsePostID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeletePost(r.Context(), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.RespondNotFound(w, "Post not found")

			return
		}

		slog.Error("delete post failed", "post_id", id, "error", err)
		response.RespondInternalServerError(w, "Failed to delete post")

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parsePostID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		response.RespondBadRequest(w, "Invalid post id")

		return 0, false
	}

	return id, true
}
