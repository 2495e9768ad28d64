// Package storage описывает ошибки слоя хранения, общие для всех реализаций.
package storage

import "errors"

var (
	// ErrUserExists — пользователь с таким email уже зарегистрирован.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrSubscriptionNotFound — подписка не найдена.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)
