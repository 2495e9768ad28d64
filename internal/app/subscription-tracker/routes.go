// Package subscriptiontracker предоставляет маршруты для основного приложения.
package subscriptiontracker

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/subscription-tracker/docs"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/create"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/health"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/list"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/read"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/remove"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/summary"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/update"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, services Services, registry *prometheus.Registry, corsOpts middlewarectx.CORSOptions) {
	metrics := middlewarectx.NewMetrics(registry)

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		// /users/me/ и /subscriptions/ обслуживаются теми же обработчиками
		middleware.StripSlashes,
		middlewarectx.CORS(corsOpts),
		metrics.Middleware,
	)

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)

	// Открытые конечные точки
	r.Get("/", health.New(logger).ServeHTTP)
	r.Post("/register", register.New(logger, services.Auth).ServeHTTP)
	r.Post("/token", login.New(logger, services.Auth).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(services.Guard, logger))
		r.Get("/users/me", me.New(logger).ServeHTTP)
		r.Post("/subscriptions", create.New(logger, services.Subscriptions).ServeHTTP)
		r.Get("/subscriptions", list.New(logger, services.Subscriptions).ServeHTTP)
		r.Get("/subscriptions/summary", summary.New(logger, services.Subscriptions).ServeHTTP)
		r.Get("/subscriptions/{id}", read.New(logger, services.Subscriptions).ServeHTTP)
		r.Put("/subscriptions/{id}", update.New(logger, services.Subscriptions).ServeHTTP)
		r.Delete("/subscriptions/{id}", remove.New(logger, services.Subscriptions).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	// Swagger docs endpoint, /docs/ после StripSlashes приходит как /docs
	r.Get("/docs", http.RedirectHandler("/docs/index.html", http.StatusMovedPermanently).ServeHTTP)
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, response.Error("not found"))
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusMethodNotAllowed)
	render.JSON(w, r, response.Error("method not allowed"))
}
