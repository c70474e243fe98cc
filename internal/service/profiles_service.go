package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inkwellhq/inkwell/internal/apperrors"
	"github.com/inkwellhq/inkwell/internal/models"
)

// ProfilesRepository defines the data access needed by ProfilesService.
type ProfilesRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	Create(ctx context.Context, id uuid.UUID, username string, fullName, avatarURL *string) (*models.Profile, error)
	Update(ctx context.Context, id uuid.UUID, req *models.UpdateProfileRequest) (*models.Profile, error)
	TouchLastSeen(ctx context.Context, id uuid.UUID, at time.Time) error
	AddPoints(ctx context.Context, id uuid.UUID, points int) (*models.Profile, error)
}

var usernameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9_]`)

const maxDefaultUsernameLen = 30

// ProfilesService handles profile lookup, lazy creation, and gamification.
type ProfilesService struct {
	repo ProfilesRepository
}

// NewProfilesService creates a profiles service.
func NewProfilesService(repo ProfilesRepository) *ProfilesService {
	return &ProfilesService{repo: repo}
}

// EnsureProfile returns the profile for a user, creating it with defaults on
// first sight. Existing profiles get their last_seen touched, best-effort.
// Idempotent under races: when two first-sight calls collide, the losing
// insert is a no-op and the winner's row is returned.
func (s *ProfilesService) EnsureProfile(ctx context.Context, userID uuid.UUID, email string) (*models.Profile, error) {
	profile, err := s.repo.GetByID(ctx, userID)
	if err == nil {
		if touchErr := s.repo.TouchLastSeen(ctx, userID, time.Now()); touchErr != nil {
			slog.Warn("profile: touch last_seen failed", "user_id", userID, "error", touchErr)
		}

		return profile, nil
	}

	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	profile, err = s.repo.Create(ctx, userID, defaultUsername(userID, email), nil, nil)
	if errors.Is(err, apperrors.ErrNotFound) {
		// Lost the insert race; the row exists now.
		return s.repo.GetByID(ctx, userID)
	}

	return profile, err
}

// GetProfile returns a profile by user id.
func (s *ProfilesService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return s.repo.GetByID(ctx, userID)
}

// UpdateProfile applies a partial update after validating the username.
func (s *ProfilesService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.Profile, error) {
	if req.Username != nil && strings.TrimSpace(*req.Username) == "" {
		return nil, apperrors.NewValidationError("username", "username cannot be empty")
	}

	return s.repo.Update(ctx, userID, req)
}

// AwardPoints adds points to a user's profile; the level is recomputed in
// the same write.
func (s *ProfilesService) AwardPoints(ctx context.Context, userID uuid.UUID, points int) error {
	if points <= 0 {
		return nil
	}

	_, err := s.repo.AddPoints(ctx, userID, points)

	return err
}

// defaultUsername derives a username from the email local part, sanitized
// and capped; falls back to a user-id prefix when there is no email.
func defaultUsername(userID uuid.UUID, email string) string {
	local, _, found := strings.Cut(email, "@")
	if found && local != "" {
		name := usernameSanitizer.ReplaceAllString(local, "_")
		if len(name) > maxDefaultUsernameLen {
			name = name[:maxDefaultUsernameLen]
		}

		return name
	}

	return "user_" + userID.String()[:8]
}
