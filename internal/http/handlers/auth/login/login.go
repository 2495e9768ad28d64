// Package login реализует HTTP-обработчик выдачи токена доступа.
//
// Запрос принимается в виде OAuth2 password-формы (application/x-www-form-urlencoded)
// или JSON с теми же полями. Поле username содержит email пользователя.
// При успехе возвращается bearer-токен; при неверных учетных данных — 401
// с заголовком WWW-Authenticate.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/response"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
	services "github.com/magabrotheeeer/subscription-tracker/internal/services/auth"
)

// Request — входные данные для получения токена.
//
// Остальные поля OAuth2-формы принимаются, но не используются.
type Request struct {
	Username     string `json:"username" form:"username" validate:"required"`
	Password     string `json:"password" form:"password" validate:"required"`
	GrantType    string `json:"grant_type,omitempty" form:"grant_type"`
	Scope        string `json:"scope,omitempty" form:"scope"`
	ClientID     string `json:"client_id,omitempty" form:"client_id"`
	ClientSecret string `json:"client_secret,omitempty" form:"client_secret"`
}

// TokenResponse — ответ с токеном доступа.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
}

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис аутентификации
	validate *validator.Validate // Валидатор для проверки входных данных
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// New создает новый экземпляр Handler с указанными логгером и сервисом аутентификации.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Получение токена доступа
// @Description Аутентифицирует пользователя по email (поле username) и паролю. Возвращает bearer-токен.
// @Tags Auth
// @Accept  x-www-form-urlencoded,json
// @Produce  json
// @Param username formData string true "Email пользователя"
// @Param password formData string true "Пароль"
// @Success 200 {object} TokenResponse "Успешная авторизация"
// @Failure 400 {object} response.ErrorResponse "Некорректное тело запроса"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /token [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.Decode(r, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		log.Warn("invalid credentials", slog.String("username", req.Username))
		w.Header().Set("WWW-Authenticate", "Bearer")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(services.ErrInvalidCredentials.Error()))
		return
	}
	if err != nil {
		log.Error("login failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to issue token"))
		return
	}

	log.Info("login success", slog.String("username", req.Username))
	render.JSON(w, r, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
