package models

import (
	"encoding/json"
	"time"
)

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
	// Context is kept raw so that a malformed or wrong-typed value degrades
	// to defaults instead of failing the whole request.
	Context json.RawMessage `json:"context,omitempty"`
}

// ChatResponse is the envelope returned by the chat endpoint for both
// outcomes.
type ChatResponse struct {
	Success   bool   `json:"success"`
	Response  string `json:"response,omitempty"`
	Error     string `json:"error,omitempty"`
	SetupURL  string `json:"setup_url,omitempty"`
	Timestamp string `json:"timestamp"`
}

// ServiceHealth reports whether the upstream model was configured at startup.
type ServiceHealth struct {
	Status    string  `json:"status"` // "healthy" or "ai_unavailable"
	Timestamp string  `json:"timestamp"`
	Model     *string `json:"model"`
	Message   string  `json:"message"`
}

const (
	HealthStatusHealthy       = "healthy"
	HealthStatusAIUnavailable = "ai_unavailable"
)

// TimestampLayout is ISO-8601 in UTC with microsecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func NewFailure(message string, now time.Time) ChatResponse {
	return ChatResponse{Success: false, Error: message, Timestamp: FormatTimestamp(now)}
}
