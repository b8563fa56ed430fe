package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"inkstrokes-ai/internal/models"
	"inkstrokes-ai/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// statusFor is the single place a chat outcome becomes an HTTP status.
func statusFor(kind services.ResultKind) int {
	switch kind {
	case services.ResultOK:
		return http.StatusOK
	case services.ErrKindValidation:
		return http.StatusBadRequest
	case services.ErrKindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func chatEnvelope(res services.ChatResult, now time.Time) models.ChatResponse {
	if res.OK() {
		return models.ChatResponse{
			Success:   true,
			Response:  res.Text,
			Timestamp: models.FormatTimestamp(now),
		}
	}

	resp := models.NewFailure(res.Message, now)
	if res.Kind == services.ErrKindUnavailable {
		resp.SetupURL = services.SetupURL
	}
	return resp
}

// NotFound and MethodNotAllowed keep router-level errors in the same envelope.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, models.NewFailure("Not found", time.Now()))
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, models.NewFailure("Method not allowed", time.Now()))
}
