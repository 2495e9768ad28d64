// Package middlewarectx содержит HTTP middleware для аутентификации запросов.
//
// JWTMiddleware проверяет bearer-токен в заголовке Authorization через Guard
// и в случае успеха кладёт текущего активного пользователя в контекст запроса.
//
// Любая ошибка проверки токена возвращает HTTP 401 с одним и тем же сообщением,
// отключённая учётная запись — HTTP 400.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/services/guard"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User — ключ для текущего пользователя (*models.User) в контексте.
const User Key = "user"

// Guard описывает разрешение токена в активного пользователя.
type Guard interface {
	CurrentActiveUser(ctx context.Context, token string) (*models.User, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
func JWTMiddleware(g Guard, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr, ok := BearerToken(r)
			if !ok {
				log.Error("missing or invalid authorization header")
				Unauthorized(w, r)
				return
			}

			user, err := g.CurrentActiveUser(r.Context(), tokenStr)
			if errors.Is(err, guard.ErrInactiveAccount) {
				log.Warn("inactive user", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(guard.ErrInactiveAccount.Error()))
				return
			}
			if err != nil {
				log.Error("failed to validate credentials", sl.Err(err))
				Unauthorized(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), User, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken извлекает токен из заголовка "Authorization: Bearer <token>".
// Схема сравнивается без учёта регистра.
func BearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Unauthorized пишет ответ 401 с заголовком WWW-Authenticate.
func Unauthorized(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, response.Error(guard.ErrUnauthorized.Error()))
}

// UserFromContext возвращает пользователя, положенного JWTMiddleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(User).(*models.User)
	return user, ok && user != nil
}
