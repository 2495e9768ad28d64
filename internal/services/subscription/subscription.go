// Package services содержит бизнес-логику для управления подписками пользователей.
//
// Каждая операция над одной подпиской сначала проверяет её существование,
// затем владельца, и только после этого применяет изменения.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/services/guard"
)

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// CreateSubscription добавляет новую подписку и возвращает её.
	CreateSubscription(ctx context.Context, ownerID uuid.UUID, fields models.SubscriptionFields) (models.Subscription, error)
	// ListSubscriptions возвращает подписки владельца.
	ListSubscriptions(ctx context.Context, ownerID uuid.UUID) ([]models.Subscription, error)
	// GetSubscription возвращает подписку по ID.
	GetSubscription(ctx context.Context, id uuid.UUID) (models.Subscription, error)
	// ReplaceSubscription перезаписывает поля подписки.
	ReplaceSubscription(ctx context.Context, id uuid.UUID, fields models.SubscriptionFields) (models.Subscription, error)
	// DeleteSubscription удаляет подписку по ID.
	DeleteSubscription(ctx context.Context, id uuid.UUID) error
}

// SubscriptionService реализует бизнес-логику работы с подписками.
type SubscriptionService struct {
	repo SubscriptionRepository
	log  *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo: repo,
		log:  log,
	}
}

// Create создает новую подписку для пользователя.
func (s *SubscriptionService) Create(ctx context.Context, user *models.User, req models.SubscriptionRequest) (models.Subscription, error) {
	const op = "services.subscription.Create"

	fields, err := req.Fields()
	if err != nil {
		return models.Subscription{}, fmt.Errorf("%s: %w", op, err)
	}
	sub, err := s.repo.CreateSubscription(ctx, user.ID, fields)
	if err != nil {
		return models.Subscription{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("created new subscription", slog.String("id", sub.ID.String()), slog.String("owner_id", user.ID.String()))
	return sub, nil
}

// List возвращает все подписки пользователя.
func (s *SubscriptionService) List(ctx context.Context, user *models.User) ([]models.Subscription, error) {
	const op = "services.subscription.List"

	subs, err := s.repo.ListSubscriptions(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}

// Get возвращает подписку, если она принадлежит пользователю.
func (s *SubscriptionService) Get(ctx context.Context, user *models.User, id uuid.UUID) (models.Subscription, error) {
	const op = "services.subscription.Get"

	sub, err := s.owned(ctx, user, id)
	if err != nil {
		return models.Subscription{}, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// Replace целиком заменяет поля подписки пользователя.
func (s *SubscriptionService) Replace(ctx context.Context, user *models.User, id uuid.UUID, req models.SubscriptionRequest) (models.Subscription, error) {
	const op = "services.subscription.Replace"

	fields, err := req.Fields()
	if err != nil {
		return models.Subscription{}, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.owned(ctx, user, id); err != nil {
		return models.Subscription{}, fmt.Errorf("%s: %w", op, err)
	}
	sub, err := s.repo.ReplaceSubscription(ctx, id, fields)
	if err != nil {
		return models.Subscription{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("replaced subscription", slog.String("id", id.String()))
	return sub, nil
}

// Delete удаляет подписку пользователя.
func (s *SubscriptionService) Delete(ctx context.Context, user *models.User, id uuid.UUID) error {
	const op = "services.subscription.Delete"

	if _, err := s.owned(ctx, user, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.DeleteSubscription(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("deleted subscription", slog.String("id", id.String()))
	return nil
}

// Summary считает месячный и годовой эквивалент расходов пользователя по валютам.
func (s *SubscriptionService) Summary(ctx context.Context, user *models.User) (models.Summary, error) {
	const op = "services.subscription.Summary"

	subs, err := s.repo.ListSubscriptions(ctx, user.ID)
	if err != nil {
		return models.Summary{}, fmt.Errorf("%s: %w", op, err)
	}

	byCurrency := make(map[string]*models.CurrencyTotal)
	for _, sub := range subs {
		total, ok := byCurrency[sub.Currency]
		if !ok {
			total = &models.CurrencyTotal{Currency: sub.Currency}
			byCurrency[sub.Currency] = total
		}
		total.Count++
		switch sub.BillingCycle {
		case models.Yearly:
			total.Yearly += sub.Price
			total.Monthly += sub.Price / 12
		default:
			total.Monthly += sub.Price
			total.Yearly += sub.Price * 12
		}
	}

	summary := models.Summary{Count: len(subs), Totals: make([]models.CurrencyTotal, 0, len(byCurrency))}
	for _, total := range byCurrency {
		total.Monthly = roundCents(total.Monthly)
		total.Yearly = roundCents(total.Yearly)
		summary.Totals = append(summary.Totals, *total)
	}
	sort.Slice(summary.Totals, func(i, j int) bool {
		return summary.Totals[i].Currency < summary.Totals[j].Currency
	})
	return summary, nil
}

// owned загружает подписку и проверяет владельца: сначала NotFound, затем Forbidden.
func (s *SubscriptionService) owned(ctx context.Context, user *models.User, id uuid.UUID) (models.Subscription, error) {
	sub, err := s.repo.GetSubscription(ctx, id)
	if err != nil {
		return models.Subscription{}, err
	}
	if err := guard.AuthorizeOwner(user, sub); err != nil {
		s.log.Warn("ownership check failed", slog.String("id", id.String()))
		return models.Subscription{}, err
	}
	return sub, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
