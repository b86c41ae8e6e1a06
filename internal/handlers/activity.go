package handlers

import (
	"net/http"

	"github.com/AnshRaj112/threads-backend/internal/middleware"
	"github.com/AnshRaj112/threads-backend/internal/models"
)

type ActivityResponse struct {
	Success  bool                  `json:"success"`
	Activity []models.ActivityItem `json:"activity"`
}

// GetActivity lists replies other users left on the caller's threads. Callers
// who have not finished onboarding get 409.
func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	profile := h.users.FetchUser(r.Context(), middleware.CallerID(r.Context()))
	if profile == nil || !profile.Onboarded {
		writeError(w, http.StatusConflict, "Onboarding required")
		return
	}
	writeJSON(w, http.StatusOK, ActivityResponse{
		Success:  true,
		Activity: h.activity.GetActivity(r.Context(), profile.ID),
	})
}
