// Package models содержит доменные структуры, описывающие подписку,
// а также вспомогательные типы для работы с данными из внешних источников (например, JSON-запросы).
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidSubscription возвращается, если данные подписки не проходят проверку.
var ErrInvalidSubscription = errors.New("invalid subscription data")

// FieldError указывает поле подписки, не прошедшее проверку.
// Сравнивается с ErrInvalidSubscription через errors.Is.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidSubscription
}

// InvalidMessage возвращает текст ошибки проверки для ответа клиенту.
func InvalidMessage(err error) string {
	var fieldErr *FieldError
	if errors.As(err, &fieldErr) {
		return fieldErr.Error()
	}
	return ErrInvalidSubscription.Error()
}

// DefaultCurrency подставляется, если валюта в запросе не указана.
const DefaultCurrency = "USD"

// DateLayout — формат календарной даты в запросах и ответах.
const DateLayout = "2006-01-02"

// BillingCycle — периодичность списания.
type BillingCycle string

const (
	// Monthly — ежемесячное списание.
	Monthly BillingCycle = "monthly"
	// Yearly — ежегодное списание.
	Yearly BillingCycle = "yearly"
)

// Valid сообщает, является ли значение допустимым циклом.
func (c BillingCycle) Valid() bool {
	return c == Monthly || c == Yearly
}

// Date — календарная дата без времени, сериализуется как "2006-01-02".
type Date struct {
	time.Time
}

// NewDate возвращает Date для указанного дня в UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate разбирает строку в формате DateLayout.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// String возвращает дату в формате DateLayout.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON реализует json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON реализует json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// SubscriptionFields — перезаписываемая часть подписки.
// При обновлении заменяется целиком, id и владелец не меняются.
type SubscriptionFields struct {
	Name         string       `json:"name"`          // Название сервиса
	Price        float64      `json:"price"`         // Цена за период, неотрицательная
	Currency     string       `json:"currency"`      // Трёхбуквенный код валюты
	BillingCycle BillingCycle `json:"billing_cycle"` // monthly или yearly
	StartDate    Date         `json:"start_date"`    // Дата начала подписки
}

// Subscription представляет собой основную модель подписки,
// используемую в бизнес-логике и хранилище.
type Subscription struct {
	ID      uuid.UUID `json:"id"`       // Уникальный идентификатор
	OwnerID uuid.UUID `json:"owner_id"` // ID пользователя-владельца, задаётся один раз
	SubscriptionFields
}

// SubscriptionRequest используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в SubscriptionFields.
// Дата приходит строкой, чтобы её можно было валидировать и парсить вручную.
type SubscriptionRequest struct {
	Name         string   `json:"name" validate:"required"`                               // Название сервиса
	Price        *float64 `json:"price" validate:"required,gte=0"`                        // Цена (>=0)
	Currency     string   `json:"currency,omitempty" validate:"omitempty,len=3,alpha"`    // Трёхбуквенный код валюты, по умолчанию USD
	BillingCycle string   `json:"billing_cycle" validate:"required,oneof=monthly yearly"` // Цикл списания
	StartDate    string   `json:"start_date" validate:"required"`                         // Дата начала в формате 2006-01-02
}

// Fields конвертирует провалидированный запрос в SubscriptionFields.
func (r SubscriptionRequest) Fields() (SubscriptionFields, error) {
	const op = "models.SubscriptionRequest.Fields"
	startDate, err := ParseDate(r.StartDate)
	if err != nil {
		return SubscriptionFields{}, fmt.Errorf("%s: %w", op, &FieldError{Field: "StartDate", Reason: "must be a date in format YYYY-MM-DD"})
	}
	cycle := BillingCycle(r.BillingCycle)
	if !cycle.Valid() {
		return SubscriptionFields{}, fmt.Errorf("%s: %w", op, &FieldError{Field: "BillingCycle", Reason: "must be one of: monthly yearly"})
	}
	var price float64
	if r.Price != nil {
		price = *r.Price
	}
	if price < 0 {
		return SubscriptionFields{}, fmt.Errorf("%s: %w", op, &FieldError{Field: "Price", Reason: "must be greater than or equal to 0"})
	}
	currency := r.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	return SubscriptionFields{
		Name:         r.Name,
		Price:        price,
		Currency:     currency,
		BillingCycle: cycle,
		StartDate:    startDate,
	}, nil
}
