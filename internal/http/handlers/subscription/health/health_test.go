package health

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
)

func TestHealthHandler(t *testing.T) {
	handler := New(slog.New(slog.NewTextHandler(io.Discard, nil)))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"Subscription Tracker API is running"}`, rec.Body.String())
}

func TestHealthHandler_LogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	handler := New(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-1"))

	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), "op=handlers.health")
	assert.Contains(t, buf.String(), "request_id=req-1")
}
