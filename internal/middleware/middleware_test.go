package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"inkstrokes-ai/internal/models"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
})

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/ai/health", nil))

	_, err := uuid.Parse(seen)
	require.NoError(t, err, "expected a UUID request id, got %q", seen)
	assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))
}

func TestRequestID_ReusesCallerValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/ai/health", nil)
	req.Header.Set(RequestIDHeader, "caller-123")

	rr := httptest.NewRecorder()
	RequestID(okHandler).ServeHTTP(rr, req)

	assert.Equal(t, "caller-123", rr.Header().Get(RequestIDHeader))
}

func TestCORS_AllowAll(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/ai/chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")

	rr := httptest.NewRecorder()
	CORS([]string{"*"})(okHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_ListedOriginOnly(t *testing.T) {
	mw := CORS([]string{"http://localhost:3000"})

	allowed := httptest.NewRequest(http.MethodPost, "/api/ai/chat", nil)
	allowed.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	mw(okHandler).ServeHTTP(rr, allowed)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))

	other := httptest.NewRequest(http.MethodPost, "/api/ai/chat", nil)
	other.Header.Set("Origin", "http://evil.test")
	rr = httptest.NewRecorder()
	mw(okHandler).ServeHTTP(rr, other)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/ai/chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rr := httptest.NewRecorder()
	CORS([]string{"*"})(okHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
	assert.Empty(t, rr.Body.String())
}

func TestRecover_WritesJSONEnvelope(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	h := Recover(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/ai/chat", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp models.ChatResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, MsgInternalError, resp.Error)
	assert.NotContains(t, resp.Error, "boom")
	assert.Equal(t, 1, logs.FilterMessage("Handler panic").Len())
}

func TestRecover_AfterHeaderWrittenKeepsBody(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	log := zap.New(core)
	h := AccessLog(zap.NewNop())(Recover(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success":true`))
		panic("mid-stream")
	})))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/ai/chat", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"success":true`, rr.Body.String())
	assert.NotContains(t, rr.Body.String(), MsgInternalError)
	assert.Equal(t, 1, logs.FilterMessage("Handler panic").Len())
}

func TestRecover_WrappedWriterBeforeHeader(t *testing.T) {
	h := AccessLog(zap.NewNop())(Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("early")
	})))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/ai/chat", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	var resp models.ChatResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, MsgInternalError, resp.Error)
}

func TestAccessLog_RecordsStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := AccessLog(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/ai/chat", nil))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.WarnLevel, entries[0].Level)
	assert.EqualValues(t, http.StatusServiceUnavailable, entries[0].ContextMap()["status"])
	assert.Equal(t, "/api/ai/chat", entries[0].ContextMap()["path"])
}
