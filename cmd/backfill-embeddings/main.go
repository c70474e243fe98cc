// backfill-embeddings enqueues River embedding jobs for posts that have
// non-empty content and no embedding row. Run it one-off after enabling
// semantic search on an existing database; the API process works the jobs.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	"github.com/inkwellhq/inkwell/internal/repository"
	"github.com/inkwellhq/inkwell/internal/service"
	"github.com/inkwellhq/inkwell/pkg/database"
)

const defaultMaxAttempts = 3

func main() {
	if err := run(); err != nil {
		slog.Error("Backfill failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}

	maxAttempts := defaultMaxAttempts
	if raw := os.Getenv("EMBEDDING_MAX_ATTEMPTS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return fmt.Errorf("invalid EMBEDDING_MAX_ATTEMPTS: %q", raw)
		}

		maxAttempts = parsed
	}

	db, err := database.NewPostgresPool(ctx, databaseURL,
		database.WithAfterConnect(func(ctx context.Context, conn *pgx.Conn) error {
			return pgxvec.RegisterTypes(ctx, conn)
		}),
	)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer db.Close()

	embeddingsRepo := repository.NewPostEmbeddingsRepository(db)

	ids, err := embeddingsRepo.ListPostIDsForBackfill(ctx)
	if err != nil {
		return fmt.Errorf("list candidates: %w", err)
	}

	if len(ids) == 0 {
		slog.Info("Nothing to backfill")

		return nil
	}

	// Insert-only client: no workers here, the API process runs them.
	riverClient, err := river.NewClient(riverpgxv5.New(db), &river.Config{})
	if err != nil {
		return fmt.Errorf("river client: %w", err)
	}

	params := make([]river.InsertManyParams, 0, len(ids))
	for _, id := range ids {
		params = append(params, river.InsertManyParams{
			Args: service.PostEmbeddingArgs{PostID: id},
			InsertOpts: &river.InsertOpts{
				Queue:       service.EmbeddingsQueueName,
				MaxAttempts: maxAttempts,
				UniqueOpts:  river.UniqueOpts{ByArgs: true},
			},
		})
	}

	results, err := riverClient.InsertMany(ctx, params)
	if err != nil {
		return fmt.Errorf("insert jobs: %w", err)
	}

	slog.Info("Backfill jobs enqueued", "candidates", len(ids), "inserted", len(results))

	return nil
}
