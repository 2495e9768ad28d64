package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

// RegisterUser сохраняет нового пользователя и возвращает его ID.
//
// Проверка уникальности email и вставка выполняются под одной блокировкой.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (uuid.UUID, error) {
	const op = "storage.memory.RegisterUser"
	if err := checkContext(ctx, op); err != nil {
		return uuid.Nil, err
	}

	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	if _, ok := s.findByEmailLocked(user.Email); ok {
		return uuid.Nil, fmt.Errorf("%s: %w", op, storage.ErrUserExists)
	}

	user.ID = s.newID()
	s.users[user.ID] = user
	s.userOrder = append(s.userOrder, user.ID)
	return user.ID, nil
}

// GetUserByEmail возвращает пользователя по email (точное совпадение с учётом регистра).
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.memory.GetUserByEmail"
	if err := checkContext(ctx, op); err != nil {
		return nil, err
	}

	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	u, ok := s.findByEmailLocked(email)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	return &u, nil
}

// GetUser возвращает пользователя по ID.
func (s *Storage) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const op = "storage.memory.GetUser"
	if err := checkContext(ctx, op); err != nil {
		return nil, err
	}

	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	return &u, nil
}

// SetUserActive меняет признак активности учётной записи.
func (s *Storage) SetUserActive(ctx context.Context, id uuid.UUID, active bool) error {
	const op = "storage.memory.SetUserActive"
	if err := checkContext(ctx, op); err != nil {
		return err
	}

	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}
	u.IsActive = active
	s.users[id] = u
	return nil
}

// CountUsers возвращает число зарегистрированных пользователей.
func (s *Storage) CountUsers() int {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	return len(s.users)
}

// findByEmailLocked — линейный поиск, вызывается под usersMu.
func (s *Storage) findByEmailLocked(email string) (models.User, bool) {
	for _, id := range s.userOrder {
		if u := s.users[id]; u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}
