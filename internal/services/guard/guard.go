// Package guard разрешает токен в пользователя и проверяет права доступа к подпискам.
package guard

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

var (
	// ErrUnauthorized — токен невалиден или его владелец больше не существует.
	// Причина наружу не раскрывается.
	ErrUnauthorized = errors.New("could not validate credentials")
	// ErrInactiveAccount — учётная запись отключена.
	ErrInactiveAccount = errors.New("inactive user")
	// ErrForbidden — ресурс принадлежит другому пользователю.
	ErrForbidden = errors.New("not authorized to access this subscription")
)

// TokenVerifier проверяет токен и возвращает его subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserFinder ищет пользователя по email.
type UserFinder interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Guard связывает проверку токена с хранилищем пользователей.
type Guard struct {
	tokens TokenVerifier
	users  UserFinder
}

// New создаёт Guard.
func New(tokens TokenVerifier, users UserFinder) *Guard {
	return &Guard{
		tokens: tokens,
		users:  users,
	}
}

// CurrentUser возвращает пользователя, которому выпущен токен.
func (g *Guard) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	const op = "guard.CurrentUser"

	email, err := g.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrUnauthorized, err)
	}
	user, err := g.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrUnauthorized, err)
	}
	return user, nil
}

// CurrentActiveUser дополнительно требует активную учётную запись.
func (g *Guard) CurrentActiveUser(ctx context.Context, token string) (*models.User, error) {
	const op = "guard.CurrentActiveUser"

	user, err := g.CurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%s: %w", op, ErrInactiveAccount)
	}
	return user, nil
}

// AuthorizeOwner разрешает доступ только владельцу подписки.
func AuthorizeOwner(user *models.User, sub models.Subscription) error {
	if user == nil || sub.OwnerID != user.ID {
		return ErrForbidden
	}
	return nil
}
