package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"inkstrokes-ai/internal/models"
)

// MsgInternalError is shown to callers when a handler panics.
const MsgInternalError = "Internal server error"

// Recover turns a handler panic into a 500 JSON envelope and logs the stack.
// When the handler already wrote its status (seen through AccessLog's wrapped
// writer), only the log entry is produced.
func Recover(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error("Handler panic",
					zap.Any("panic", rec),
					zap.String("request_id", GetRequestID(r.Context())),
					zap.ByteString("stack", debug.Stack()),
				)
				// Headers already sent; appending an envelope would corrupt the body.
				if ww, ok := w.(chimiddleware.WrapResponseWriter); ok && ww.Status() != 0 {
					return
				}
				writeError(w, http.StatusInternalServerError, MsgInternalError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.NewFailure(message, time.Now()))
}
