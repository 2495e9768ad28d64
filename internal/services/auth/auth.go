// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/password"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

var (
	// ErrDuplicateEmail — email уже зарегистрирован.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials — неизвестный email или неверный пароль.
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

// UserRepository описывает контракт для работы с пользователями в хранилище.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его ID.
	RegisterUser(ctx context.Context, user models.User) (uuid.UUID, error)

	// GetUserByEmail возвращает пользователя по email или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService отвечает за регистрацию, проверку паролей и выпуск токенов.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// dummyHash сравнивается с паролем, когда email не найден,
// чтобы время ответа не выдавало существование пользователя.
var dummyHash = sync.OnceValue(func() string {
	h, err := password.GetHash(uuid.NewString())
	if err != nil {
		return ""
	}
	return h
})

// Register создает нового активного пользователя с хэшированным паролем.
func (s *AuthService) Register(ctx context.Context, email, rawPassword string) (*models.User, error) {
	const op = "services.auth.Register"

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrDuplicateEmail)
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Email:        email,
		PasswordHash: hashed,
		IsActive:     true,
	}

	id, err := s.users.RegisterUser(ctx, user)
	if errors.Is(err, storage.ErrUserExists) {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrDuplicateEmail, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.ID = id
	return &user, nil
}

// FindByEmail возвращает пользователя по email.
func (s *AuthService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "services.auth.FindByEmail"
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// Verify сообщает, соответствует ли пароль сохранённому хэшу.
func (s *AuthService) Verify(rawPassword, hash string) bool {
	return password.Verify(rawPassword, hash)
}

// Login проверяет пароль пользователя и выпускает сессионный токен.
//
// Неизвестный email и неверный пароль возвращают одну и ту же ошибку ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, storage.ErrUserNotFound) {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		_ = s.Verify(rawPassword, dummyHash())
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if !s.Verify(rawPassword, user.PasswordHash) {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.jwtMaker.GenerateToken(user.Email)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}
