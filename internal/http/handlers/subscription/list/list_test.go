package list

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, user *models.User) ([]models.Subscription, error) {
	args := m.Called(ctx, user)
	subs, _ := args.Get(0).([]models.Subscription)
	return subs, args.Error(1)
}

func TestListHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	user := &models.User{ID: uuid.New(), IsActive: true}
	subID := uuid.MustParse("11111111-1111-4111-8111-111111111111")

	tests := []struct {
		name           string
		user           *models.User
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "пустой список",
			user: user,
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, user).Return([]models.Subscription{}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "одна подписка",
			user: user,
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, user).Return([]models.Subscription{{
					ID:      subID,
					OwnerID: user.ID,
					SubscriptionFields: models.SubscriptionFields{
						Name: "Netflix", Price: 15.99, Currency: "USD",
						BillingCycle: models.Monthly, StartDate: models.NewDate(2024, 1, 1),
					},
				}}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody: `[{"id":"11111111-1111-4111-8111-111111111111","owner_id":"` + user.ID.String() +
				`","name":"Netflix","price":15.99,"currency":"USD","billing_cycle":"monthly","start_date":"2024-01-01"}]`,
		},
		{
			name: "ошибка сервиса",
			user: user,
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, user).Return(nil, errors.New("boom")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not list subscriptions"}`,
		},
		{
			name:           "нет пользователя",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"could not validate credentials"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)
			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/subscriptions", nil)
			if tt.user != nil {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.User, tt.user))
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
