// Package memory реализует хранилище пользователей и подписок в памяти процесса.
//
// Данные живут до остановки процесса. Каждая коллекция защищена своим sync.RWMutex,
// поэтому Storage безопасно использовать из параллельных HTTP-обработчиков.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// Storage хранит пользователей и подписки.
type Storage struct {
	usersMu sync.RWMutex
	users   map[uuid.UUID]models.User
	// userOrder сохраняет порядок регистрации для линейного поиска по email.
	userOrder []uuid.UUID

	subsMu        sync.RWMutex
	subscriptions map[uuid.UUID]models.Subscription
	subOrder      []uuid.UUID

	newID func() uuid.UUID
}

// New создаёт пустое хранилище.
func New() *Storage {
	return &Storage{
		users:         make(map[uuid.UUID]models.User),
		subscriptions: make(map[uuid.UUID]models.Subscription),
		newID:         uuid.New,
	}
}

func checkContext(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
		return nil
	}
}
