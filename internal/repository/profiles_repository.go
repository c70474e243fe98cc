package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwellhq/inkwell/internal/apperrors"
	"github.com/inkwellhq/inkwell/internal/models"
)

const profileColumns = `id, username, full_name, avatar_url, bio, points, level,
	followers_count, last_seen, created_at, updated_at`

// ProfilesRepository handles data access for the profiles table.
type ProfilesRepository struct {
	db *pgxpool.Pool
}

// NewProfilesRepository creates a new profiles repository.
func NewProfilesRepository(db *pgxpool.Pool) *ProfilesRepository {
	return &ProfilesRepository{db: db}
}

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile

	err := row.Scan(&p.ID, &p.Username, &p.FullName, &p.AvatarURL, &p.Bio,
		&p.Points, &p.Level, &p.FollowersCount, &p.LastSeen, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("profile", "")
		}

		return nil, fmt.Errorf("scan profile: %w", err)
	}

	return &p, nil
}

// GetByID returns a profile by user id, or NotFoundError.
func (r *ProfilesRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return scanProfile(r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id))
}

// Create inserts a fresh profile with default gamification state. When the
// row already exists (two ensure calls racing on first sight) the insert is
// a no-op and NotFoundError signals the caller to re-fetch.
func (r *ProfilesRepository) Create(ctx context.Context, id uuid.UUID, username string, fullName, avatarURL *string) (*models.Profile, error) {
	return scanProfile(r.db.QueryRow(ctx, `
		INSERT INTO profiles (id, username, full_name, avatar_url, last_seen)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (id) DO NOTHING
		RETURNING `+profileColumns,
		id, username, fullName, avatarURL))
}

// Update applies the non-nil fields of req and returns the updated profile.
func (r *ProfilesRepository) Update(ctx context.Context, id uuid.UUID, req *models.UpdateProfileRequest) (*models.Profile, error) {
	return scanProfile(r.db.QueryRow(ctx, `
		UPDATE profiles SET
			username = COALESCE($2, username),
			full_name = COALESCE($3, full_name),
			avatar_url = COALESCE($4, avatar_url),
			bio = COALESCE($5, bio),
			updated_at = now()
		WHERE id = $1
		RETURNING `+profileColumns,
		id, req.Username, req.FullName, req.AvatarURL, req.Bio))
}

// TouchLastSeen records activity for a user. Missing profiles are ignored.
func (r *ProfilesRepository) TouchLastSeen(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE profiles SET last_seen = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("touch last seen: %w", err)
	}

	return nil
}

// AddPoints adds points to a profile and recomputes the level in the same
// statement, so concurrent awards never lose increments.
func (r *ProfilesRepository) AddPoints(ctx context.Context, id uuid.UUID, points int) (*models.Profile, error) {
	return scanProfile(r.db.QueryRow(ctx, `
		UPDATE profiles SET
			points = points + $2,
			level = (points + $2) / $3 + 1,
			updated_at = now()
		WHERE id = $1
		RETURNING `+profileColumns,
		id, points, models.PointsPerLevel))
}
