package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"inkstrokes-ai/internal/middleware"
	"inkstrokes-ai/internal/models"
	"inkstrokes-ai/internal/services"
)

type chatAssistant interface {
	Ready() bool
	Model() string
	Chat(ctx context.Context, message string, rawContext json.RawMessage) services.ChatResult
}

type ChatHandler struct {
	assistant    chatAssistant
	log          *zap.Logger
	maxBodyBytes int64
	now          func() time.Time
}

func NewChatHandler(assistant chatAssistant, log *zap.Logger, maxBodyBytes int64) *ChatHandler {
	return &ChatHandler{
		assistant:    assistant,
		log:          log,
		maxBodyBytes: maxBodyBytes,
		now:          time.Now,
	}
}

// Health always answers 200; the body says whether the model is usable.
func (h *ChatHandler) Health(w http.ResponseWriter, r *http.Request) {
	health := models.ServiceHealth{
		Status:    models.HealthStatusAIUnavailable,
		Timestamp: models.FormatTimestamp(h.now()),
		Message:   "AI model not initialized - check API key",
	}
	if h.assistant.Ready() {
		model := h.assistant.Model()
		health.Status = models.HealthStatusHealthy
		health.Model = &model
		health.Message = "AI Backend is running"
	}

	writeJSON(w, http.StatusOK, health)
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if h.maxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	var res services.ChatResult
	var req models.ChatRequest
	if err := decodeSingleJSON(r.Body, &req); err != nil {
		res = services.ValidationFailure(services.MsgInvalidBody, err)
	} else {
		res = h.assistant.Chat(r.Context(), req.Message, req.Context)
	}

	h.logResult(r, res)
	writeJSON(w, statusFor(res.Kind), chatEnvelope(res, h.now()))
}

// decodeSingleJSON decodes exactly one JSON value and rejects anything but
// whitespace after it.
func decodeSingleJSON(body io.Reader, v interface{}) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

func (h *ChatHandler) logResult(r *http.Request, res services.ChatResult) {
	requestID := zap.String("request_id", middleware.GetRequestID(r.Context()))
	switch res.Kind {
	case services.ResultOK:
		return
	case services.ErrKindUpstream:
		h.log.Error("Chat error", requestID, zap.Error(res.Err))
	case services.ErrKindUnavailable:
		h.log.Warn("Chat rejected: AI model not initialized", requestID)
	default:
		fields := []zap.Field{requestID, zap.String("reason", res.Message)}
		if res.Err != nil {
			fields = append(fields, zap.Error(res.Err))
		}
		h.log.Debug("Chat request rejected", fields...)
	}
}
