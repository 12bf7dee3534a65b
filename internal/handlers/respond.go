package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServerError hides internals behind a generic 500; the cause goes to
// the log only.
func writeServerError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("internal error")
	w.WriteHeader(http.StatusInternalServerError)
}
