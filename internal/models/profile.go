package models

import (
	"time"

	"github.com/google/uuid"
)

// PointsPerLevel is how many points advance a profile one level.
// level = points/PointsPerLevel + 1, so a fresh profile is level 1.
const PointsPerLevel = 100

// Profile is one user's public profile and gamification state.
// The ID matches the auth provider's user id.
type Profile struct {
	ID             uuid.UUID  `json:"id"`
	Username       string     `json:"username"`
	FullName       *string    `json:"full_name"`
	AvatarURL      *string    `json:"avatar_url"`
	Bio            *string    `json:"bio"`
	Points         int        `json:"points"`
	Level          int        `json:"level"`
	FollowersCount int        `json:"followers_count"`
	LastSeen       *time.Time `json:"last_seen"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// UpdateProfileRequest is the body for PATCH /v1/profiles/{id}.
// Only the listed fields can change; points and level are server-managed.
type UpdateProfileRequest struct {
	Username  *string `json:"username" validate:"omitempty,max=30,no_null_bytes"`
	FullName  *string `json:"full_name" validate:"omitempty,max=100,no_null_bytes"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,max=2048"`
	Bio       *string `json:"bio" validate:"omitempty,max=500,no_null_bytes"`
}
