package remove

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/services/guard"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

// MockService реализует интерфейс remove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Delete(ctx context.Context, user *models.User, id uuid.UUID) error {
	args := m.Called(ctx, user, id)
	return args.Error(0)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	user := &models.User{ID: uuid.New(), IsActive: true}
	id := uuid.New()

	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное удаление",
			url:  "/subscriptions/" + id.String(),
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, user, id).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
			expectedBody:   "",
		},
		{
			name:           "некорректный id",
			url:            "/subscriptions/not-a-uuid",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"failed to decode id from url"}`,
		},
		{
			name: "повторное удаление",
			url:  "/subscriptions/" + id.String(),
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, user, id).Return(fmt.Errorf("op: %w", storage.ErrSubscriptionNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"subscription not found"}`,
		},
		{
			name: "чужая подписка",
			url:  "/subscriptions/" + id.String(),
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, user, id).Return(fmt.Errorf("op: %w", guard.ErrForbidden))
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"not authorized to access this subscription"}`,
		},
		{
			name: "ошибка сервиса удаления",
			url:  "/subscriptions/" + id.String(),
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, user, id).Return(errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not remove subscription"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodDelete, tt.url, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", strings.TrimPrefix(tt.url, "/subscriptions/"))
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middlewarectx.User, user)
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedBody, strings.TrimSpace(w.Body.String()))

			mockService.AssertExpectations(t)
		})
	}
}
