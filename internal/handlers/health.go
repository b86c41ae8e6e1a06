package handlers

import "net/http"

// Health answers liveness probes. It does not touch the database.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// ConnectionState reports the last known health of the document store.
type ConnectionState interface {
	IsConnected() bool
}

// Ready answers 503 until the document store connection is live.
func Ready(state ConnectionState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if state == nil || !state.IsConnected() {
			writeError(w, http.StatusServiceUnavailable, "Database not connected")
			return
		}
		w.Write([]byte("OK"))
	}
}
