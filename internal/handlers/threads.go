package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/AnshRaj112/threads-backend/internal/models"
	"github.com/AnshRaj112/threads-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
)

type ProfileThreadsResponse struct {
	Success bool `json:"success"`
	*models.ProfileThreads
}

type PostsResponse struct {
	Success bool `json:"success"`
	models.PostsPage
}

type ThreadResponse struct {
	Success bool                 `json:"success"`
	Thread  *models.ThreadDetail `json:"thread"`
}

type profileTab func(ctx context.Context, externalID string) (*models.ProfileThreads, error)

func (h *Handler) serveProfileTab(w http.ResponseWriter, r *http.Request, tab profileTab) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	res, err := tab(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if res == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, ProfileThreadsResponse{Success: true, ProfileThreads: res})
}

// GetUserThreads lists a user's top-level threads.
func (h *Handler) GetUserThreads(w http.ResponseWriter, r *http.Request) {
	h.serveProfileTab(w, r, h.threads.FetchUserPosts)
}

// GetUserReplies lists a user's replies.
func (h *Handler) GetUserReplies(w http.ResponseWriter, r *http.Request) {
	h.serveProfileTab(w, r, h.threads.FetchUserReplies)
}

func (h *Handler) GetUserTagged(w http.ResponseWriter, r *http.Request) {
	h.serveProfileTab(w, r, h.threads.FetchUserTagged)
}

// ListThreads serves the home feed. Query: page, size.
func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := h.threads.FetchPosts(r.Context(),
		utils.ParsePositiveInt(q.Get("page"), 1),
		utils.ParsePositiveInt(q.Get("size"), h.feedSize),
	)
	writeJSON(w, http.StatusOK, PostsResponse{Success: true, PostsPage: page})
}

// GetThread returns one thread with its direct replies.
func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	detail, err := h.threads.FetchThreadByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if detail == nil {
		writeError(w, http.StatusNotFound, "Thread not found")
		return
	}
	writeJSON(w, http.StatusOK, ThreadResponse{Success: true, Thread: detail})
}
