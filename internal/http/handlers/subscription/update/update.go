// Package update реализует HTTP-обработчик полной замены полей подписки.
//
// ID и владелец подписки сохраняются, остальные поля перезаписываются значениями из запроса.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/services/guard"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

// Handler обрабатывает запросы на обновление подписки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает замену подписки с проверкой владельца.
type Service interface {
	Replace(ctx context.Context, user *models.User, id uuid.UUID, req models.SubscriptionRequest) (models.Subscription, error)
}

// New создаёт Handler обновления подписки.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить подписку
// @Description Полностью заменяет поля подписки. ID и владелец не меняются.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path string true "ID подписки (UUID)"
// @Param request body models.SubscriptionRequest true "Новые данные подписки"
// @Success 200 {object} models.Subscription
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Подписка принадлежит другому пользователю"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /subscriptions/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.update"

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

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	var req models.SubscriptionRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err = h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	sub, err := h.service.Replace(r.Context(), user, id, req)
	switch {
	case errors.Is(err, storage.ErrSubscriptionNotFound):
		log.Info("subscription not found", slog.String("id", id.String()))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(storage.ErrSubscriptionNotFound.Error()))
		return
	case errors.Is(err, guard.ErrForbidden):
		log.Warn("access denied", slog.String("id", id.String()))
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error(guard.ErrForbidden.Error()))
		return
	case errors.Is(err, models.ErrInvalidSubscription):
		log.Error("invalid subscription data", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(models.InvalidMessage(err)))
		return
	case err != nil:
		log.Error("failed to update subscription", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update subscription"))
		return
	}

	log.Info("success to update subscription", slog.String("id", id.String()))
	render.JSON(w, r, sub)
}
