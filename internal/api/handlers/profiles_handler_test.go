package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwellhq/inkwell/internal/apperrors"
	"github.com/inkwellhq/inkwell/internal/models"
)

type mockProfilesService struct {
	ensureFunc func(ctx context.Context, userID uuid.UUID, email string) (*models.Profile, error)
	getFunc    func(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	updateFunc func(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.Profile, error)
}

func (m *mockProfilesService) EnsureProfile(ctx context.Context, userID uuid.UUID, email string) (*models.Profile, error) {
	return m.ensureFunc(ctx, userID, email)
}

func (m *mockProfilesService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return m.getFunc(ctx, userID)
}

func (m *mockProfilesService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.Profile, error) {
	return m.updateFunc(ctx, userID, req)
}

func newProfilesMux(svc ProfilesService) *http.ServeMux {
	h := NewProfilesHandler(svc)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/profiles/ensure", h.Ensure)
	mux.HandleFunc("GET /v1/profiles/{id}", h.Get)
	mux.HandleFunc("PATCH /v1/profiles/{id}", h.Update)

	return mux
}

func TestProfilesHandler_Ensure(t *testing.T) {
	userID := uuid.New()

	t.Run("returns the profile", func(t *testing.T) {
		svc := &mockProfilesService{
			ensureFunc: func(_ context.Context, id uuid.UUID, email string) (*models.Profile, error) {
				assert.Equal(t, userID, id)
				assert.Equal(t, "ada@example.com", email)

				return &models.Profile{ID: id, Username: "ada", Level: 1}, nil
			},
		}

		body := `{"user_id": "` + userID.String() + `", "email": "ada@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/profiles/ensure", strings.NewReader(body))
		rec := httptest.NewRecorder()
		newProfilesMux(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"ada"`)
	})

	t.Run("missing user_id returns 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/profiles/ensure", strings.NewReader(`{"email": "a@b.com"}`))
		rec := httptest.NewRecorder()
		newProfilesMux(&mockProfilesService{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "UserID is required")
	})

	t.Run("invalid email returns 400", func(t *testing.T) {
		body := `{"user_id": "` + userID.String() + `", "email": "not-an-email"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/profiles/ensure", strings.NewReader(body))
		rec := httptest.NewRecorder()
		newProfilesMux(&mockProfilesService{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Email must be a valid email address")
	})
}

func TestProfilesHandler_Get(t *testing.T) {
	t.Run("unknown profile returns 404", func(t *testing.T) {
		svc := &mockProfilesService{
			getFunc: func(context.Context, uuid.UUID) (*models.Profile, error) {
				return nil, apperrors.NewNotFoundError("profile", "profile not found")
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/v1/profiles/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		newProfilesMux(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid id returns 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/profiles/abc", nil)
		rec := httptest.NewRecorder()
		newProfilesMux(&mockProfilesService{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProfilesHandler_Update(t *testing.T) {
	t.Run("updates editable fields", func(t *testing.T) {
		userID := uuid.New()
		svc := &mockProfilesService{
			updateFunc: func(_ context.Context, id uuid.UUID, req *models.UpdateProfileRequest) (*models.Profile, error) {
				require.NotNil(t, req.Bio)
				assert.Equal(t, "gardener", *req.Bio)

				return &models.Profile{ID: id, Username: "ada", Bio: req.Bio}, nil
			},
		}

		req := httptest.NewRequest(http.MethodPatch, "/v1/profiles/"+userID.String(), strings.NewReader(`{"bio": "gardener"}`))
		rec := httptest.NewRecorder()
		newProfilesMux(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("overlong username returns 400", func(t *testing.T) {
		userID := uuid.New()
		body := `{"username": "` + strings.Repeat("a", 31) + `"}`
		req := httptest.NewRequest(http.MethodPatch, "/v1/profiles/"+userID.String(), strings.NewReader(body))
		rec := httptest.NewRecorder()
		newProfilesMux(&mockProfilesService{}).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Username must be at most 30")
	})
}
