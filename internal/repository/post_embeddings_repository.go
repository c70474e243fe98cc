package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/inkwellhq/inkwell/internal/apperrors"
	"github.com/inkwellhq/inkwell/internal/models"
)

// PostEmbeddingsRepository handles data access for the post_embeddings table.
// Vectors travel in the pgvector wire format, which round-trips float32
// losslessly; this is the one canonical serialization for embeddings.
type PostEmbeddingsRepository struct {
	db *pgxpool.Pool
}

// NewPostEmbeddingsRepository creates a new post embeddings repository.
func NewPostEmbeddingsRepository(db *pgxpool.Pool) *PostEmbeddingsRepository {
	return &PostEmbeddingsRepository{db: db}
}

// Upsert inserts or overwrites the embedding for post_id in a single
// statement, so a failed write never leaves a partial record and repeated
// writes for the same post converge on the last completed one.
func (r *PostEmbeddingsRepository) Upsert(ctx context.Context, postID int64, embedding []float32) error {
	vec := pgvector.NewVector(embedding)
	now := time.Now()

	_, err := r.db.Exec(ctx, `
		INSERT INTO post_embeddings (post_id, embedding, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (post_id)
		DO UPDATE SET embedding = EXCLUDED.embedding, updated_at = $3`,
		postID, vec, now,
	)
	if err != nil {
		return classifyStoreError("post embeddings upsert", err)
	}

	return nil
}

// ErrEmbeddingNotFound is returned when no embedding row exists for the post.
var ErrEmbeddingNotFound = errors.New("embedding not found for post")

// GetByPostID returns the stored embedding for a post.
// Returns ErrEmbeddingNotFound when the post has not been indexed yet.
func (r *PostEmbeddingsRepository) GetByPostID(ctx context.Context, postID int64) ([]float32, error) {
	var vec pgvector.Vector

	err := r.db.QueryRow(ctx,
		`SELECT embedding FROM post_embeddings WHERE post_id = $1`,
		postID,
	).Scan(&vec)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmbeddingNotFound
		}

		return nil, classifyStoreError("get post embedding", err)
	}

	return vec.Slice(), nil
}

// DeleteByPostID removes the embedding row for a post. Deleting an
// unindexed post is a no-op.
func (r *PostEmbeddingsRepository) DeleteByPostID(ctx context.Context, postID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM post_embeddings WHERE post_id = $1`, postID)
	if err != nil {
		return classifyStoreError("delete post embedding", err)
	}

	return nil
}

// NearestPosts returns post ids, similarity scores (0..1), and titles for the
// nearest neighbors to queryEmbedding. Cosine distance (<=>); score = 1 - distance.
// Only rows with score >= minScore are returned.
func (r *PostEmbeddingsRepository) NearestPosts(
	ctx context.Context, queryEmbedding []float32, limit int, minScore float64,
) ([]models.PostWithScore, error) {
	queryVec := pgvector.NewVector(queryEmbedding)

	rows, err := r.db.Query(ctx, `
		SELECT e.post_id, (1 - (e.embedding <=> $1)) AS score, p.title
		FROM post_embeddings e
		INNER JOIN posts p ON p.id = e.post_id
		WHERE (1 - (e.embedding <=> $1)) >= $2
		ORDER BY e.embedding <=> $1
		LIMIT $3`, queryVec, minScore, limit)
	if err != nil {
		return nil, classifyStoreError("nearest posts", err)
	}
	defer rows.Close()

	var results []models.PostWithScore

	for rows.Next() {
		var row models.PostWithScore
		if err := rows.Scan(&row.PostID, &row.Score, &row.Title); err != nil {
			return nil, fmt.Errorf("scan post with score: %w", err)
		}

		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating nearest: %w", err)
	}

	return results, nil
}

// ListPostIDsForBackfill returns ids of posts with non-empty content and no
// embedding row (candidates for re-indexing).
func (r *PostEmbeddingsRepository) ListPostIDsForBackfill(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id FROM posts p
		WHERE trim(p.content) != ''
		  AND NOT EXISTS (
		    SELECT 1 FROM post_embeddings e WHERE e.post_id = p.id
		  )
	`)
	if err != nil {
		return nil, fmt.Errorf("list post ids for backfill: %w", err)
	}
	defer rows.Close()

	var ids []int64

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan post id: %w", err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating backfill ids: %w", err)
	}

	return ids, nil
}

// classifyStoreError maps a Postgres error to the store error taxonomy:
// permission failures (including row-level security) are AuthorizationError,
// data/constraint violations are SchemaError, everything else is treated as
// a transient StoreUnavailableError that the caller may retry.
func classifyStoreError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "42501": // insufficient_privilege (e.g. RLS policy)
			return apperrors.NewAuthorizationError(op+": not authorized", err)
		case strings.HasPrefix(pgErr.Code, "22"), strings.HasPrefix(pgErr.Code, "23"):
			return apperrors.NewSchemaError(op+": "+pgErr.Message, err)
		}
	}

	return apperrors.NewStoreUnavailableError(op+" failed", err)
}
