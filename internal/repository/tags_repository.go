package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwellhq/inkwell/internal/models"
)

// TagsRepository handles data access for the tags and post_tags tables.
type TagsRepository struct {
	db *pgxpool.Pool
}

// NewTagsRepository creates a new tags repository.
func NewTagsRepository(db *pgxpool.Pool) *TagsRepository {
	return &TagsRepository{db: db}
}

// UpsertByName returns the tag with the given name, creating it if needed.
// The no-op DO UPDATE makes RETURNING work on the conflict path too.
func (r *TagsRepository) UpsertByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag

	err := r.db.QueryRow(ctx, `
		INSERT INTO tags (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name`, name,
	).Scan(&tag.ID, &tag.Name)
	if err != nil {
		return nil, fmt.Errorf("upsert tag: %w", err)
	}

	return &tag, nil
}

// AttachToPost links a tag to a post; attaching twice is a no-op.
func (r *TagsRepository) AttachToPost(ctx context.Context, postID, tagID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)
		ON CONFLICT (post_id, tag_id) DO NOTHING`, postID, tagID)
	if err != nil {
		return fmt.Errorf("attach tag to post: %w", err)
	}

	return nil
}

// ListForPost returns the tags attached to a post, alphabetically.
func (r *TagsRepository) ListForPost(ctx context.Context, postID int64) ([]models.Tag, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.name FROM tags t
		INNER JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = $1
		ORDER BY t.name`, postID)
	if err != nil {
		return nil, fmt.Errorf("list tags for post: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag

	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}

		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	return tags, nil
}
