package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

// CreateSubscription сохраняет подписку владельца и возвращает полную запись.
func (s *Storage) CreateSubscription(ctx context.Context, ownerID uuid.UUID, fields models.SubscriptionFields) (models.Subscription, error) {
	const op = "storage.memory.CreateSubscription"
	if err := checkContext(ctx, op); err != nil {
		return models.Subscription{}, err
	}

	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	sub := models.Subscription{
		ID:                 s.newID(),
		OwnerID:            ownerID,
		SubscriptionFields: fields,
	}
	s.subscriptions[sub.ID] = sub
	s.subOrder = append(s.subOrder, sub.ID)
	return sub, nil
}

// ListSubscriptions возвращает снимок подписок владельца в порядке создания.
func (s *Storage) ListSubscriptions(ctx context.Context, ownerID uuid.UUID) ([]models.Subscription, error) {
	const op = "storage.memory.ListSubscriptions"
	if err := checkContext(ctx, op); err != nil {
		return nil, err
	}

	s.subsMu.RLock()
	defer s.subsMu.RUnlock()

	res := make([]models.Subscription, 0)
	for _, id := range s.subOrder {
		if sub := s.subscriptions[id]; sub.OwnerID == ownerID {
			res = append(res, sub)
		}
	}
	return res, nil
}

// GetSubscription возвращает подписку по ID.
func (s *Storage) GetSubscription(ctx context.Context, id uuid.UUID) (models.Subscription, error) {
	const op = "storage.memory.GetSubscription"
	if err := checkContext(ctx, op); err != nil {
		return models.Subscription{}, err
	}

	s.subsMu.RLock()
	defer s.subsMu.RUnlock()

	sub, ok := s.subscriptions[id]
	if !ok {
		return models.Subscription{}, fmt.Errorf("%s: %w", op, storage.ErrSubscriptionNotFound)
	}
	return sub, nil
}

// ReplaceSubscription целиком перезаписывает поля подписки, сохраняя ID и владельца.
func (s *Storage) ReplaceSubscription(ctx context.Context, id uuid.UUID, fields models.SubscriptionFields) (models.Subscription, error) {
	const op = "storage.memory.ReplaceSubscription"
	if err := checkContext(ctx, op); err != nil {
		return models.Subscription{}, err
	}

	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	sub, ok := s.subscriptions[id]
	if !ok {
		return models.Subscription{}, fmt.Errorf("%s: %w", op, storage.ErrSubscriptionNotFound)
	}
	sub.SubscriptionFields = fields
	s.subscriptions[id] = sub
	return sub, nil
}

// DeleteSubscription удаляет подписку. Повторное удаление возвращает ErrSubscriptionNotFound.
func (s *Storage) DeleteSubscription(ctx context.Context, id uuid.UUID) error {
	const op = "storage.memory.DeleteSubscription"
	if err := checkContext(ctx, op); err != nil {
		return err
	}

	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	if _, ok := s.subscriptions[id]; !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrSubscriptionNotFound)
	}
	delete(s.subscriptions, id)
	if i := slices.Index(s.subOrder, id); i >= 0 {
		s.subOrder = slices.Delete(s.subOrder, i, i+1)
	}
	return nil
}

// CountSubscriptions возвращает общее число подписок.
func (s *Storage) CountSubscriptions() int {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	return len(s.subscriptions)
}
