package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/AnshRaj112/threads-backend/internal/middleware"
	"github.com/AnshRaj112/threads-backend/internal/models"
	"github.com/AnshRaj112/threads-backend/internal/services"
	"github.com/AnshRaj112/threads-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxProfileBody = 64 << 10

type UserResponse struct {
	Success bool                `json:"success"`
	User    *models.UserProfile `json:"user"`
}

type UsersResponse struct {
	Success bool `json:"success"`
	models.UsersPage
}

type UpdateUserResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// GetMe returns the caller's profile. 404 tells the client to onboard.
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerID(r.Context())
	profile := h.users.FetchUser(r.Context(), caller)
	if profile == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{Success: true, User: profile})
}

// UpdateMe saves the caller's profile. The body is an UpdateUserInput; the
// external id always comes from the caller identity.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var in services.UpdateUserInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxProfileBody)).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	in.ExternalID = middleware.CallerID(r.Context())

	if err := h.users.UpdateUser(r.Context(), in); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UpdateUserResponse{Success: true, Message: "Profile saved"})
}

// ListUsers pages through the user directory, excluding the caller.
// Query: q, page, size, sort=asc|desc.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sort := services.SortDesc
	if strings.EqualFold(strings.TrimSpace(q.Get("sort")), string(services.SortAsc)) {
		sort = services.SortAsc
	}

	page, err := h.users.FetchUsers(r.Context(), services.FetchUsersInput{
		UserID:     middleware.CallerID(r.Context()),
		Search:     q.Get("q"),
		PageNumber: utils.ParsePositiveInt(q.Get("page"), 1),
		PageSize:   utils.ParsePositiveInt(q.Get("size"), 0),
		SortBy:     sort,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UsersResponse{Success: true, UsersPage: *page})
}

// GetUser returns a public profile, served from the page cache when possible.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	path := services.ProfilePath(id)
	log := h.log.With(zap.String("external_id", id))

	if h.pages != nil {
		var cached models.UserProfile
		hit, err := h.pages.Get(r.Context(), path, &cached)
		if err != nil {
			log.Warn("page cache read failed", zap.Error(err))
		}
		if hit {
			w.Header().Set("X-Cache", "HIT")
			writeJSON(w, http.StatusOK, UserResponse{Success: true, User: &cached})
			return
		}
	}

	profile := h.users.FetchUser(r.Context(), id)
	if profile == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if h.pages != nil {
		if err := h.pages.Set(r.Context(), path, profile); err != nil {
			log.Warn("page cache write failed", zap.Error(err))
		}
		w.Header().Set("X-Cache", "MISS")
	}
	writeJSON(w, http.StatusOK, UserResponse{Success: true, User: profile})
}
