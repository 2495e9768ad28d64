// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и признак активности.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "github.com/google/uuid"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           uuid.UUID `json:"id"`        // Уникальный идентификатор пользователя
	Email        string    `json:"email"`     // Электронная почта, уникальна с учётом регистра
	PasswordHash string    `json:"-"`         // Хэш пароля пользователя, наружу не отдаётся
	IsActive     bool      `json:"is_active"` // Признак активной учётной записи
}
