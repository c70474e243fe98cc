package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/inkwellhq/inkwell/internal/embedder"
	"github.com/inkwellhq/inkwell/internal/models"
)

// ErrEmptyQuery is returned when a semantic search query is empty after trimming.
var ErrEmptyQuery = errors.New("query is required and must be non-empty")

// NearestPostsRepository provides the embedding read side for semantic search.
type NearestPostsRepository interface {
	NearestPosts(ctx context.Context, queryEmbedding []float32, limit int, minScore float64) ([]models.PostWithScore, error)
}

// SearchService performs semantic search over post embeddings. Query
// embeddings are cached so repeated queries skip the model server; concurrent
// misses for the same query collapse into one embedding call.
type SearchService struct {
	embedderClient embedder.Client
	repo           NearestPostsRepository
	minScore       float64
	queryCache     *QueryEmbeddingCache
	logger         *slog.Logger
}

// SearchServiceParams configures SearchService. QueryCache may be nil (no caching).
type SearchServiceParams struct {
	Embedder   embedder.Client
	Repo       NearestPostsRepository
	MinScore   float64
	QueryCache *QueryEmbeddingCache
	Logger     *slog.Logger
}

// NewSearchService creates a SearchService.
func NewSearchService(p SearchServiceParams) *SearchService {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SearchService{
		embedderClient: p.Embedder,
		repo:           p.Repo,
		minScore:       p.MinScore,
		queryCache:     p.QueryCache,
		logger:         logger,
	}
}

// SemanticSearch returns up to topK posts ranked by cosine similarity to the
// query. minScore overrides the configured threshold when positive.
func (s *SearchService) SemanticSearch(ctx context.Context, query string, topK int, minScore float64) ([]models.PostWithScore, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if minScore <= 0 {
		minScore = s.minScore
	}

	embedding, err := s.queryEmbedding(ctx, query)
	if err != nil {
		s.logger.Error("semantic search: create embedding failed", "error", err, "topK", topK)

		return nil, fmt.Errorf("create embedding: %w", err)
	}

	results, err := s.repo.NearestPosts(ctx, embedding, topK, minScore)
	if err != nil {
		s.logger.Error("semantic search: nearest failed", "error", err)

		return nil, fmt.Errorf("nearest posts: %w", err)
	}

	return results, nil
}

func (s *SearchService) queryEmbedding(ctx context.Context, query string) ([]float32, error) {
	if s.queryCache == nil {
		return s.embedderClient.CreateEmbedding(ctx, query)
	}

	return s.queryCache.Get(ctx, query, func(ctx context.Context, q string) ([]float32, error) {
		return s.embedderClient.CreateEmbedding(ctx, q)
	})
}
