// Package remove реализует HTTP-обработчик удаления подписки по ID.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/services/guard"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

// Service описывает удаление подписки с проверкой владельца.
type Service interface {
	Delete(ctx context.Context, user *models.User, id uuid.UUID) error
}

// Handler удаляет подписку по id и отвечает 204.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт Handler удаления подписки.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить подписку
// @Tags Subscriptions
// @Security BearerAuth
// @Param id path string true "ID подписки (UUID)"
// @Success 204 "Подписка удалена"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Подписка принадлежит другому пользователю"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 422 {object} response.ErrorResponse "Некорректный ID"
// @Router /subscriptions/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.remove"

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

	err = h.service.Delete(r.Context(), user, id)
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
	case err != nil:
		log.Error("failed to remove subscription", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove subscription"))
		return
	}

	log.Info("success to remove subscription", slog.String("id", id.String()))
	render.NoContent(w, r)
}
