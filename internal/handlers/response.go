package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/AnshRaj112/threads-backend/internal/services"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Success: false, Message: message})
}

// writeServiceError maps service sentinels to a status. Only validation
// details reach the client.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "Username is already taken")
	case errors.Is(err, services.ErrInvalidArgument):
		msg := "Invalid request"
		if _, detail, ok := strings.Cut(err.Error(), services.ErrInvalidArgument.Error()+": "); ok {
			msg += ": " + detail
		}
		writeError(w, http.StatusBadRequest, msg)
	case errors.Is(err, services.ErrWriteFailed):
		writeError(w, http.StatusInternalServerError, "Failed to save changes")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
