package transport

import (
	"encoding/json"
	"net/http"

	"nevyra-be/internal/logger"

	"go.uber.org/zap"
)

// Envelope is the uniform response shape. Message carries the
// server's failure reason verbatim so clients can surface it as-is.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		logger.L().Error("failed to encode response", zap.Error(err))
	}
}

func respondData(w http.ResponseWriter, status int, data interface{}) {
	respondJSON(w, status, Envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Envelope{Success: true, Message: message})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, Envelope{Success: false, Message: message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
