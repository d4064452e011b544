package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"wordstreak/internal/game"
)

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": userMsg})
}

func respondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// statusForKind maps the error taxonomy onto HTTP statuses.
func statusForKind(kind game.Kind) int {
	switch kind {
	case game.KindValidation:
		return http.StatusBadRequest
	case game.KindNotFound:
		return http.StatusNotFound
	case game.KindConflict:
		return http.StatusConflict
	case game.KindExhaustion:
		return http.StatusServiceUnavailable
	case game.KindInvariant:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// respondWithServiceError turns a service error into an HTTP response.
// Classified errors carry a user-safe message; anything else becomes an
// opaque 500.
func respondWithServiceError(w http.ResponseWriter, err error, logMsg string) {
	if kind, ok := game.KindOf(err); ok {
		userMsg := err.Error()
		if kind == game.KindInvariant {
			userMsg = "Internal server error"
		}
		respondWithError(w, statusForKind(kind), userMsg, logMsg, err)
		return
	}
	respondWithError(w, http.StatusInternalServerError, "Internal server error", logMsg, err)
}
