package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/inkwellhq/inkwell/internal/api/response"
	"github.com/inkwellhq/inkwell/internal/api/validation"
	"github.com/inkwellhq/inkwell/internal/apperrors"
	"github.com/inkwellhq/inkwell/internal/models"
)

// ProfilesService defines the interface for profile business logic.
type ProfilesService interface {
	EnsureProfile(ctx context.Context, userID uuid.UUID, email string) (*models.Profile, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.Profile, error)
}

// ProfilesHandler handles HTTP requests for user profiles.
type ProfilesHandler struct {
	service ProfilesService
}

// NewProfilesHandler creates a new profiles handler.
func NewProfilesHandler(service ProfilesService) *ProfilesHandler {
	return &ProfilesHandler{service: service}
}

// EnsureProfileRequest is the body for POST /v1/profiles/ensure. The auth
// layer in front of the API supplies the user id and email after sign-in.
type EnsureProfileRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Email  string    `json:"email" validate:"omitempty,email"`
}

// Ensure handles POST /v1/profiles/ensure: returns the existing profile or
// creates one with a username derived from the email.
func (h *ProfilesHandler) Ensure(w http.ResponseWriter, r *http.Request) {
	var req EnsureProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondBadRequest(w, "Invalid JSON body")

		return
	}

	if err := validation.ValidateStruct(&req); err != nil {
		validation.RespondValidationError(w, err)

		return
	}

	profile, err := h.service.EnsureProfile(r.Context(), req.UserID, req.Email)
	if err != nil {
		slog.Error("ensure profile failed", "user_id", req.UserID, "error", err)
		response.RespondInternalServerError(w, "Failed to ensure profile")

		return
	}

	response.RespondJSON(w, http.StatusOK, profile)
}

// Get handles GET /v1/profiles/{id}.
func (h *ProfilesHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseProfileID(w, r)
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.RespondNotFound(w, "Profile not found")

			return
		}

		slog.Error("get profile failed", "user_id", userID, "error", err)
		response.RespondInternalServerError(w, "Failed to get profile")

		return
	}

	response.RespondJSON(w, http.StatusOK, profile)
}

// Update handles PATCH /v1/profiles/{id}.
func (h *ProfilesHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseProfileID(w, r)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondBadRequest(w, "Invalid JSON body")

		return
	}

	if err := validation.ValidateStruct(&req); err != nil {
		validation.RespondValidationError(w, err)

		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.RespondNotFound(w, "Profile not found")

			return
		}

		var validationErr *apperrors.ValidationError
		if errors.As(err, &validationErr) {
			response.RespondUnprocessableEntity(w, validationErr.Message)

			return
		}

		slog.Error("update profile failed", "user_id", userID, "error", err)
		response.RespondInternalServerError(w, "Failed to update profile")

		return
	}

	response.RespondJSON(w, http.StatusOK, profile)
}

func parseProfileID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		response.RespondBadRequest(w, "Invalid profile id")

		return uuid.Nil, false
	}

	return userID, true
}
