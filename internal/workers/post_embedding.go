// Package workers provides River job workers (e.g. post embedding).
package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/riverqueue/river"
	"golang.org/x/time/rate"

	"github.com/inkwellhq/inkwell/internal/apperrors"
	"github.com/inkwellhq/inkwell/internal/models"
	"github.com/inkwellhq/inkwell/internal/service"
)

// PostEmbeddingWorker generates and stores embeddings for posts.
type PostEmbeddingWorker struct {
	river.WorkerDefaults[service.PostEmbeddingArgs]

	posts    postReader
	indexing postIndexer
	limiter  *rate.Limiter
}

// postReader is the minimal post lookup needed by the worker.
type postReader interface {
	GetPost(ctx context.Context, id int64) (*models.Post, error)
}

// postIndexer is the indexing surface needed by the worker.
type postIndexer interface {
	IndexPost(ctx context.Context, postID int64, content string) error
	RemovePostEmbedding(ctx context.Context, postID int64) error
}

// NewPostEmbeddingWorker creates a worker that loads the post, embeds its
// content, and upserts the vector. limiter may be nil to disable rate limiting.
func NewPostEmbeddingWorker(posts postReader, indexing postIndexer, limiter *rate.Limiter) *PostEmbeddingWorker {
	return &PostEmbeddingWorker{
		posts:    posts,
		indexing: indexing,
		limiter:  limiter,
	}
}

const postEmbeddingTimeout = 60 * time.Second

// Timeout limits how long a single embedding job can run.
func (w *PostEmbeddingWorker) Timeout(*river.Job[service.PostEmbeddingArgs]) time.Duration {
	return postEmbeddingTimeout
}

// Work loads the post and indexes it. The post row is the source of truth at
// execution time, not at enqueue time, so a job always indexes the latest
// content and the newest write wins when jobs for the same post race.
func (w *PostEmbeddingWorker) Work(ctx context.Context, job *river.Job[service.PostEmbeddingArgs]) error {
	args := job.Args

	if w.limiter != nil {
		if err := w.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}

	post, err := w.posts.GetPost(ctx, args.PostID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			slog.Info("post embedding: post deleted before indexing",
				"post_id", args.PostID,
			)

			return nil // no retry when the post is gone
		}

		slog.Error("post embedding: get post failed",
			"post_id", args.PostID,
			"error", err,
		)

		return fmt.Errorf("get post: %w", err)
	}

	if strings.TrimSpace(post.Content) == "" {
		return w.handleEmptyContent(ctx, args.PostID)
	}

	err = w.indexing.IndexPost(ctx, args.PostID, post.Content)
	if err != nil {
		return w.classifyWorkError(ctx, job, err)
	}

	slog.Info("post embedding: stored",
		"post_id", args.PostID,
	)

	return nil
}

// handleEmptyContent removes any stale vector so an edited-to-empty post
// drops out of semantic search.
func (w *PostEmbeddingWorker) handleEmptyContent(ctx context.Context, postID int64) error {
	err := w.indexing.RemovePostEmbedding(ctx, postID)
	if err != nil {
		slog.Error("post embedding: clear failed",
			"post_id", postID,
			"error", err,
		)

		return fmt.Errorf("clear post embedding: %w", err)
	}

	slog.Info("post embedding: cleared (empty content)",
		"post_id", postID,
	)

	return nil
}

// classifyWorkError decides whether a failed index attempt is worth retrying.
// Permission and schema problems will not fix themselves between attempts.
func (w *PostEmbeddingWorker) classifyWorkError(_ context.Context, job *river.Job[service.PostEmbeddingArgs], err error) error {
	postID := job.Args.PostID

	if errors.Is(err, apperrors.ErrAuthorization) || errors.Is(err, apperrors.ErrSchema) {
		slog.Error("post embedding: non-retryable store failure",
			"post_id", postID,
			"error", err,
		)

		return nil
	}

	isLastAttempt := job.Attempt >= job.MaxAttempts
	if isLastAttempt {
		slog.Error("post embedding: failed (final attempt)",
			"post_id", postID,
			"attempt", job.Attempt,
			"error", err,
		)

		return nil
	}

	slog.Warn("post embedding: failed, will retry",
		"post_id", postID,
		"attempt", job.Attempt,
		"error", err,
	)

	return fmt.Errorf("index post %d: %w", postID, err)
}
