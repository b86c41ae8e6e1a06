package middleware

import (
	"encoding/json"
	"net/http"
)

type rejection struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after,omitempty"`
}

func writeRejection(w http.ResponseWriter, status int, message string) {
	writeRejectionBody(w, status, rejection{Message: message})
}

func writeRejectionBody(w http.ResponseWriter, status int, body rejection) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
