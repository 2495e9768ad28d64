// Package jwt реализует выпуск и проверку подписанных сессионных токенов.
//
// Maker определяет интерфейс для создания и проверки JWT токенов, в которых
// subject — email пользователя. MakerImpl — реализация на HS256 с общим секретом и сроком жизни.
package jwt

import (
	"errors"
	"time"
)

// ErrInvalidToken возвращается при любой ошибке проверки токена: неверная подпись,
// неразборчивый payload или истёкший срок. Причины намеренно не различаются.
var ErrInvalidToken = errors.New("invalid token")

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	// GenerateToken выпускает токен для subject со сроком жизни по умолчанию.
	GenerateToken(subject string) (string, error)
	// ParseToken проверяет токен и возвращает его claims.
	ParseToken(tokenStr string) (*Claims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string           // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration    // Время жизни токена.
	now       func() time.Time // Источник текущего времени.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
		now:       time.Now,
	}
}

// TTL возвращает срок жизни выпускаемых токенов.
func (j *MakerImpl) TTL() time.Duration {
	return j.tokenTTL
}
