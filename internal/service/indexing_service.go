package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/inkwellhq/inkwell/internal/apperrors"
	"github.com/inkwellhq/inkwell/internal/embedder"
)

// EmbeddingUpserter persists one embedding per post, insert-or-overwrite.
type EmbeddingUpserter interface {
	Upsert(ctx context.Context, postID int64, embedding []float32) error
	DeleteByPostID(ctx context.Context, postID int64) error
}

// IndexingService is the embed-and-store pipeline behind both the synchronous
// indexing endpoint and the async embedding worker: validate, compute the
// embedding, upsert it keyed by post id. Calling it again with the same input
// converges on the same stored vector (the upsert is idempotent); concurrent
// calls for the same post are last-writer-wins, which is acceptable for
// search freshness. It performs no internal retries, so its latency stays
// bounded; retry policy belongs to the caller or the job queue.
type IndexingService struct {
	embedder embedder.Client
	store    EmbeddingUpserter
	logger   *slog.Logger
}

// NewIndexingService creates an IndexingService. logger may be nil (defaults
// to slog.Default).
func NewIndexingService(client embedder.Client, store EmbeddingUpserter, logger *slog.Logger) *IndexingService {
	if logger == nil {
		logger = slog.Default()
	}

	return &IndexingService{
		embedder: client,
		store:    store,
		logger:   logger,
	}
}

// IndexPost validates, embeds, and upserts. Validation happens before any
// embedding work so malformed requests never touch the model.
// Errors carry the taxonomy the handlers map to status codes:
// ValidationError, EmbeddingError, or the store errors from the repository
// (StoreUnavailableError, AuthorizationError, SchemaError).
func (s *IndexingService) IndexPost(ctx context.Context, postID int64, content string) error {
	content = strings.TrimSpace(content)

	if postID <= 0 {
		return apperrors.NewValidationError("postId", "postId is required")
	}

	if content == "" {
		return apperrors.NewValidationError("content", "content is required")
	}

	vector, err := s.embedder.CreateEmbedding(ctx, content)
	if err != nil {
		s.logger.Error("indexing: embed failed", "post_id", postID, "stage", "embed", "error", err)

		return apperrors.NewEmbeddingError("embedding computation failed", err)
	}

	if err := s.store.Upsert(ctx, postID, vector); err != nil {
		s.logger.Error("indexing: upsert failed", "post_id", postID, "stage", "store", "error", err)

		return err
	}

	s.logger.Info("indexing: embedding stored", "post_id", postID, "dimensions", len(vector))

	return nil
}

// RemovePostEmbedding clears the stored embedding for a post (e.g. when its
// content becomes empty). Clearing an unindexed post is a no-op.
func (s *IndexingService) RemovePostEmbedding(ctx context.Context, postID int64) error {
	if err := s.store.DeleteByPostID(ctx, postID); err != nil {
		s.logger.Error("indexing: clear failed", "post_id", postID, "error", err)

		return err
	}

	s.logger.Info("indexing: embedding cleared", "post_id", postID)

	return nil
}
