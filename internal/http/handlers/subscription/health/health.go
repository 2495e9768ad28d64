// Package health реализует корневой обработчик, сообщающий о доступности API.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

// Message — текст ответа корневого эндпоинта.
const Message = "Subscription Tracker API is running"

// Handler отвечает на проверку доступности API.
type Handler struct {
	log *slog.Logger
}

// New создаёт Handler проверки доступности.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP godoc
// @Summary Проверка доступности
// @Tags Health
// @Produce  json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"
	h.log.Debug("health check",
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	render.JSON(w, r, map[string]string{
		"status": Message,
	})
}
