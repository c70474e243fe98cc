package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/inkwellhq/inkwell/internal/api/response"
	"github.com/inkwellhq/inkwell/internal/api/validation"
	"github.com/inkwellhq/inkwell/internal/models"
	"github.com/inkwellhq/inkwell/internal/service"
)

// SearchService defines the interface for semantic search over posts.
type SearchService interface {
	SemanticSearch(ctx context.Context, query string, topK int, minScore float64) ([]models.PostWithScore, error)
}

// SearchHandler handles HTTP requests for semantic search.
type SearchHandler struct {
	service SearchService
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(service SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// SemanticSearchRequest is the body for POST /v1/posts/search/semantic.
// API contract uses camelCase (topK, minScore).
// Emptiness of the query is the search service's call (it trims first), so
// query carries no required tag here.
type SemanticSearchRequest struct {
	Query    string  `json:"query" validate:"max=1000,no_null_bytes"`
	TopK     int     `json:"topK"`                           //nolint:tagliatelle // API contract
	MinScore float64 `json:"minScore" validate:"gte=0,lte=1"` //nolint:tagliatelle // API contract
}

// SemanticSearchResponse is the response for semantic search.
type SemanticSearchResponse struct {
	Results []models.PostWithScore `json:"results"`
}

const (
	defaultTopK = 10
	maxTopK     = 100
)

// SemanticSearch handles POST /v1/posts/search/semantic.
func (h *SearchHandler) SemanticSearch(w http.ResponseWriter, r *http.Request) {
	var req SemanticSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondBadRequest(w, "Invalid JSON body")

		return
	}

	if err := validation.ValidateStruct(&req); err != nil {
		validation.RespondValidationError(w, err)

		return
	}

	if req.TopK <= 0 {
		req.TopK = defaultTopK
	}

	if req.TopK > maxTopK {
		req.TopK = maxTopK
	}

	results, err := h.service.SemanticSearch(r.Context(), req.Query, req.TopK, req.MinScore)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			response.RespondBadRequest(w, "query is required")

			return
		}

		slog.Error("semantic search failed", "error", err)
		response.RespondInternalServerError(w, "Search failed")

		return
	}

	if results == nil {
		results = []models.PostWithScore{}
	}

	response.RespondJSON(w, http.StatusOK, SemanticSearchResponse{Results: results})
}
