package handlers

import (
	"net/http"

	"github.com/AnshRaj112/threads-backend/internal/middleware"

	"go.uber.org/zap"
)

const maxUploadSize = 10 << 20

type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
}

// UploadProfileImage stores the caller's profile picture and returns its URL,
// to be sent back as the image field of a profile save.
func (h *Handler) UploadProfileImage(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		writeError(w, http.StatusServiceUnavailable, "Image uploads are not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1<<20)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	caller := middleware.CallerID(r.Context())
	url, err := h.uploader.UploadProfileImage(r.Context(), fileHeader, caller)
	if err != nil {
		h.log.Error("profile image upload failed", zap.String("external_id", caller), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		Success: true,
		Message: "File uploaded successfully",
		URL:     url,
	})
}
