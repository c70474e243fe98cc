// Package service holds the business logic between the HTTP handlers and the repositories.
package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/riverqueue/river"

	"github.com/inkwellhq/inkwell/internal/apperrors"
	"github.com/inkwellhq/inkwell/internal/models"
)

// PointsPerPost is the gamification award for publishing a post.
const PointsPerPost = 10

// PostsRepository defines the data access needed by PostsService.
type PostsRepository interface {
	Create(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	List(ctx context.Context, filters *models.ListPostsFilters) ([]models.Post, error)
	Count(ctx context.Context, filters *models.ListPostsFilters) (int64, error)
	Delete(ctx context.Context, id int64) error
}

// TagsRepository defines the tag operations needed by PostsService.
type TagsRepository interface {
	UpsertByName(ctx context.Context, name string) (*models.Tag, error)
	AttachToPost(ctx context.Context, postID, tagID int64) error
	ListForPost(ctx context.Context, postID int64) ([]models.Tag, error)
}

// PointsAwarder grants gamification points after a post is published.
type PointsAwarder interface {
	AwardPoints(ctx context.Context, userID uuid.UUID, points int) error
}

// PostsService handles business logic for posts. Creating a post is a
// two-phase contract: the post row is the durable phase; tag attachment,
// point awards, and embedding-job enqueue are best-effort and never fail
// the creation.
type PostsService struct {
	repo        PostsRepository
	tags        TagsRepository
	points      PointsAwarder
	inserter    PostEmbeddingInserter
	maxAttempts int
}

// NewPostsService creates a posts service. inserter may be nil when the
// embedding pipeline is disabled; points may be nil to skip gamification.
func NewPostsService(
	repo PostsRepository,
	tags TagsRepository,
	points PointsAwarder,
	inserter PostEmbeddingInserter,
	maxAttempts int,
) *PostsService {
	return &PostsService{
		repo:        repo,
		tags:        tags,
		points:      points,
		inserter:    inserter,
		maxAttempts: maxAttempts,
	}
}

// SetEmbeddingInserter wires the job inserter after the River client exists
// (the client needs the workers, which need this service).
func (s *PostsService) SetEmbeddingInserter(inserter PostEmbeddingInserter) {
	s.inserter = inserter
}

// CreatePost validates and stores a post, then kicks off the best-effort
// side work. The caller gets the created post even when indexing could not
// be scheduled; the post stays findable by title regardless.
func (s *PostsService) CreatePost(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error) {
	if err := validateCreatePost(req); err != nil {
		return nil, err
	}

	post, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	post.Tags = s.attachTags(ctx, post.ID, req.Tags)

	if s.points != nil {
		if err := s.points.AwardPoints(ctx, post.UserID, PointsPerPost); err != nil {
			slog.Warn("post create: points award failed", "post_id", post.ID, "user_id", post.UserID, "error", err)
		}
	}

	s.enqueueEmbedding(ctx, post)

	return post, nil
}

// GetPost returns a post with its tags.
func (s *PostsService) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tags, err := s.tags.ListForPost(ctx, id)
	if err != nil {
		slog.Warn("get post: list tags failed", "post_id", id, "error", err)
	} else {
		post.Tags = tags
	}

	return post, nil
}

// ListPosts returns a page of posts, newest first.
func (s *PostsService) ListPosts(ctx context.Context, filters *models.ListPostsFilters) (*models.ListPostsResponse, error) {
	if filters.Limit <= 0 {
		filters.Limit = 20 // Default limit
	}
	if filters.Limit > 100 {
		filters.Limit = 100 // Max limit
	}

	posts, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, filters)
	if err != nil {
		return nil, err
	}

	return &models.ListPostsResponse{
		Data:   posts,
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}, nil
}

// DeletePost deletes a post; the schema cascades the embedding and tag links.
func (s *PostsService) DeletePost(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// attachTags upserts and links each tag name. Failures are logged and
// skipped; a bad tag never blocks publishing.
func (s *PostsService) attachTags(ctx context.Context, postID int64, names []string) []models.Tag {
	var attached []models.Tag

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		tag, err := s.tags.UpsertByName(ctx, name)
		if err != nil {
			slog.Warn("post create: tag upsert failed", "post_id", postID, "tag", name, "error", err)
			continue
		}

		if err := s.tags.AttachToPost(ctx, postID, tag.ID); err != nil {
			slog.Warn("post create: tag attach failed", "post_id", postID, "tag", name, "error", err)
			continue
		}

		attached = append(attached, *tag)
	}

	return attached
}

// enqueueEmbedding schedules the embedding job for a post. Fire-and-forget:
// enqueue failures are logged and swallowed so phase 1 (the post row) never
// depends on phase 2 (the search index).
func (s *PostsService) enqueueEmbedding(ctx context.Context, post *models.Post) {
	if s.inserter == nil {
		return
	}

	if strings.TrimSpace(post.Content) == "" {
		slog.Debug("post create: no content to index", "post_id", post.ID)

		return
	}

	opts := &river.InsertOpts{
		Queue:       EmbeddingsQueueName,
		MaxAttempts: s.maxAttempts,
		UniqueOpts:  river.UniqueOpts{ByArgs: true},
	}

	_, err := s.inserter.Insert(ctx, PostEmbeddingArgs{PostID: post.ID}, opts)
	if err != nil {
		slog.Error("post create: embedding enqueue failed", "post_id", post.ID, "error", err)

		return
	}

	slog.Info("post create: embedding job enqueued", "post_id", post.ID)
}

func validateCreatePost(req *models.CreatePostRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return apperrors.NewValidationError("title", "title is required")
	}

	if req.UserID == uuid.Nil {
		return apperrors.NewValidationError("user_id", "user_id is required")
	}

	return nil
}
