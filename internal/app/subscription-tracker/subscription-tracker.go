package subscriptiontracker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/magabrotheeeer/subscription-tracker/internal/config"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/subscription-tracker/internal/services/auth"
	"github.com/magabrotheeeer/subscription-tracker/internal/services/guard"
	subservice "github.com/magabrotheeeer/subscription-tracker/internal/services/subscription"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage/memory"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	server *http.Server
	logger *slog.Logger
	store  *memory.Storage
}

// Services — сервисы, которые используют обработчики.
type Services struct {
	Auth          *authservice.AuthService
	Guard         *guard.Guard
	Subscriptions *subservice.SubscriptionService
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg.JWTSecretKey == "" {
		return nil, errors.New("app.New: jwt secret key is empty")
	}

	store := memory.New()
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	services := Services{
		Auth:          authservice.NewAuthService(store, jwtMaker),
		Guard:         guard.New(jwtMaker, store),
		Subscriptions: subservice.NewSubscriptionService(store, logger),
	}

	registry := newRegistry(store)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, services, registry, middlewarectx.CORSOptions{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: cfg.AllowCredentials,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		store:  store,
	}, nil
}

// Handler возвращает корневой HTTP-обработчик приложения.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully",
			slog.Int("users", a.store.CountUsers()),
			slog.Int("subscriptions", a.store.CountSubscriptions()),
		)
		return a.server.Shutdown(timeoutCtx)
	}
}

// newRegistry создаёт реестр метрик с runtime-коллекторами и размерами хранилища.
func newRegistry(store *memory.Storage) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "subscription_tracker",
			Name:      "users",
			Help:      "Number of registered users.",
		}, func() float64 { return float64(store.CountUsers()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "subscription_tracker",
			Name:      "subscriptions",
			Help:      "Number of stored subscriptions.",
		}, func() float64 { return float64(store.CountSubscriptions()) }),
	)
	return reg
}
