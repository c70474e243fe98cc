package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"golang.org/x/time/rate"

	"github.com/inkwellhq/inkwell/internal/api/handlers"
	"github.com/inkwellhq/inkwell/internal/api/middleware"
	"github.com/inkwellhq/inkwell/internal/config"
	"github.com/inkwellhq/inkwell/internal/embedder"
	"github.com/inkwellhq/inkwell/internal/observability"
	"github.com/inkwellhq/inkwell/internal/repository"
	"github.com/inkwellhq/inkwell/internal/service"
	"github.com/inkwellhq/inkwell/internal/workers"
	"github.com/inkwellhq/inkwell/pkg/database"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	observability.SetupLogging(cfg.LogLevel)

	db, err := database.NewPostgresPool(ctx, cfg.DatabaseURL,
		database.WithAfterConnect(func(ctx context.Context, conn *pgx.Conn) error {
			return pgxvec.RegisterTypes(ctx, conn)
		}),
	)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	embedderClient, err := embedder.New(cfg.EmbedderProvider, cfg.EmbedderBaseURL, cfg.EmbedderModel, cfg.EmbeddingDimensions)
	if err != nil {
		slog.Error("Failed to create embedder client", "error", err)
		os.Exit(1)
	}
	slog.Info("Embedder configured", "provider", cfg.EmbedderProvider, "model", cfg.EmbedderModel, "dimensions", cfg.EmbeddingDimensions)

	// Repositories
	postsRepo := repository.NewPostsRepository(db)
	tagsRepo := repository.NewTagsRepository(db)
	profilesRepo := repository.NewProfilesRepository(db)
	embeddingsRepo := repository.NewPostEmbeddingsRepository(db)

	// Services
	indexingService := service.NewIndexingService(embedderClient, embeddingsRepo, slog.Default())
	profilesService := service.NewProfilesService(profilesRepo)
	postsService := service.NewPostsService(postsRepo, tagsRepo, profilesService, nil, cfg.EmbeddingMaxAttempts)

	riverClient, err := initRiver(ctx, db, cfg, postsService, indexingService)
	if err != nil {
		slog.Error("Failed to initialize River job queue", "error", err)
		os.Exit(1)
	}
	postsService.SetEmbeddingInserter(riverClient)
	slog.Info("River job queue started",
		"queue", service.EmbeddingsQueueName,
		"workers", cfg.EmbeddingMaxConcurrent,
		"max_attempts", cfg.EmbeddingMaxAttempts,
		"rate_limit", cfg.EmbeddingRateLimit,
	)

	var queryCache *service.QueryEmbeddingCache
	if cfg.QueryCacheSize > 0 {
		queryCache, err = service.NewQueryEmbeddingCache(cfg.QueryCacheSize)
		if err != nil {
			slog.Error("Failed to create query cache", "error", err)
			os.Exit(1)
		}
	}

	searchService := service.NewSearchService(service.SearchServiceParams{
		Embedder:   embedderClient,
		Repo:       embeddingsRepo,
		MinScore:   cfg.SearchScoreThreshold,
		QueryCache: queryCache,
		Logger:     slog.Default(),
	})

	// Handlers
	postsHandler := handlers.NewPostsHandler(postsService)
	profilesHandler := handlers.NewProfilesHandler(profilesService)
	searchHandler := handlers.NewSearchHandler(searchService)
	embedPostHandler := handlers.NewEmbedPostHandler(indexingService)
	healthHandler := handlers.NewHealthHandler()

	// Public endpoints (no authentication required)
	publicMux := http.NewServeMux()
	publicMux.HandleFunc("GET /health", healthHandler.Check)

	// Protected endpoints (authentication required)
	protectedMux := http.NewServeMux()
	protectedMux.HandleFunc("POST /v1/posts", postsHandler.Create)
	protectedMux.HandleFunc("GET /v1/posts", postsHandler.List)
	protectedMux.HandleFunc("GET /v1/posts/{id}", postsHandler.Get)
	protectedMux.HandleFunc("DELETE /v1/posts/{id}", postsHandler.Delete)

	protectedMux.HandleFunc("POST /v1/posts/search/semantic", searchHandler.SemanticSearch)
	protectedMux.HandleFunc("POST /v1/embed-post", embedPostHandler.Embed)

	protectedMux.HandleFunc("POST /v1/profiles/ensure", profilesHandler.Ensure)
	protectedMux.HandleFunc("GET /v1/profiles/{id}", profilesHandler.Get)
	protectedMux.HandleFunc("PATCH /v1/profiles/{id}", profilesHandler.Update)

	var protectedHandler http.Handler = protectedMux
	protectedHandler = middleware.Auth(cfg.APIKey)(protectedHandler)

	mainMux := http.NewServeMux()
	mainMux.Handle("/v1/", protectedHandler)
	mainMux.Handle("/", publicMux) // catch-all for public routes (/health, etc.)

	var handler http.Handler = mainMux
	handler = middleware.MaxBody(cfg.MaxRequestBodyBytes)(handler)
	handler = middleware.Logging(handler)
	handler = middleware.RequestID(handler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 1. Stop accepting new HTTP requests
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	// 2. Stop River (waits for in-flight jobs to complete)
	slog.Info("Stopping River job queue...")
	if err := riverClient.Stop(shutdownCtx); err != nil {
		slog.Error("River forced to shutdown", "error", err)
	}
	slog.Info("River job queue stopped")

	slog.Info("Server exited")
}

// initRiver creates and starts the River client with the post embedding worker.
func initRiver(
	ctx context.Context,
	db *pgxpool.Pool,
	cfg *config.Config,
	postsService *service.PostsService,
	indexingService *service.IndexingService,
) (*river.Client[pgx.Tx], error) {
	limiter := rate.NewLimiter(rate.Limit(cfg.EmbeddingRateLimit), 1)
	embeddingWorker := workers.NewPostEmbeddingWorker(postsService, indexingService, limiter)

	riverWorkers := river.NewWorkers()
	river.AddWorker(riverWorkers, embeddingWorker)

	riverClient, err := river.NewClient(riverpgxv5.New(db), &river.Config{
		Queues: map[string]river.QueueConfig{
			service.EmbeddingsQueueName: {MaxWorkers: cfg.EmbeddingMaxConcurrent},
		},
		Workers:     riverWorkers,
		MaxAttempts: cfg.EmbeddingMaxAttempts,
	})
	if err != nil {
		return nil, err
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, err
	}

	return riverClient, nil
}
