// Package summary реализует HTTP-обработчик сводки расходов на подписки пользователя.
//
// Handler берет текущего пользователя из контекста, вызывает подсчёт через сервис
// и возвращает месячный и годовой эквивалент по каждой валюте.
package summary

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Handler управляет HTTP-запросами на подсчёт сводки.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис бизнес-логики для подсчёта сводки
}

// Service описывает интерфейс подсчёта сводки по подпискам.
type Service interface {
	Summary(ctx context.Context, user *models.User) (models.Summary, error)
}

// New создаёт новый Handler с переданным логгером и сервисом подсчёта.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка расходов
// @Description Месячный и годовой эквивалент стоимости подписок текущего пользователя по валютам.
// @Tags Subscriptions
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} models.Summary
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /subscriptions/summary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.summary"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		middlewarectx.Unauthorized(w, r)
		return
	}

	summary, err := h.service.Summary(r.Context(), user)
	if err != nil {
		log.Error("failed to calculate summary", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not calculate summary"))
		return
	}

	log.Info("success to calculate summary", slog.Int("count", summary.Count))
	render.JSON(w, r, summary)
}
