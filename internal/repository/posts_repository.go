// Package repository provides pgx-backed data access for the application's tables.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwellhq/inkwell/internal/apperrors"
	"github.com/inkwellhq/inkwell/internal/models"
)

// PostsRepository handles data access for the posts table.
type PostsRepository struct {
	db *pgxpool.Pool
}

// NewPostsRepository creates a new posts repository.
func NewPostsRepository(db *pgxpool.Pool) *PostsRepository {
	return &PostsRepository{db: db}
}

// Create inserts a post and returns it with the generated id and timestamp.
func (r *PostsRepository) Create(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		UserID:    req.UserID,
		Title:     req.Title,
		Content:   req.Content,
		MediaURLs: req.MediaURLs,
	}

	if post.MediaURLs == nil {
		post.MediaURLs = []string{}
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO posts (user_id, title, content, media_urls)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		post.UserID, post.Title, post.Content, post.MediaURLs,
	).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return post, nil
}

// GetByID returns a post by id, or NotFoundError when it does not exist.
func (r *PostsRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post

	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, title, content, media_urls, created_at
		FROM posts WHERE id = $1`, id,
	).Scan(&post.ID, &post.UserID, &post.Title, &post.Content, &post.MediaURLs, &post.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("post", "")
		}

		return nil, fmt.Errorf("get post: %w", err)
	}

	return &post, nil
}

// List returns posts newest first, optionally filtered by author.
func (r *PostsRepository) List(ctx context.Context, filters *models.ListPostsFilters) ([]models.Post, error) {
	query := `
		SELECT id, user_id, title, content, media_urls, created_at
		FROM posts`
	args := []any{}

	if filters.UserID != nil {
		query += ` WHERE user_id = $1`
		args = append(args, *filters.UserID)
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post

	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.UserID, &post.Title, &post.Content, &post.MediaURLs, &post.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}

		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating posts: %w", err)
	}

	return posts, nil
}

// Count returns the number of posts matching the filters.
func (r *PostsRepository) Count(ctx context.Context, filters *models.ListPostsFilters) (int64, error) {
	query := `SELECT COUNT(*) FROM posts`
	args := []any{}

	if filters.UserID != nil {
		query += ` WHERE user_id = $1`
		args = append(args, *filters.UserID)
	}

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}

	return total, nil
}

// Delete removes a post. The embedding row and tag links cascade in the schema.
// Returns NotFoundError when no row matched.
func (r *PostsRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("post", "")
	}

	return nil
}
