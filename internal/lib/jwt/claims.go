// Package jwt реализует подписанную cookie сессии портала на основе JWT.
//
// В токене хранится только идентификатор серверной сессии и пользователя;
// bearer-токен удалённого сервиса и состояние сессии лежат на сервере.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и разбора токенов сессии.
type Maker interface {
	// GenerateToken подписывает токен для сессии sessionID пользователя userID.
	GenerateToken(sessionID, userID string) (string, error)
	// ParseToken проверяет подпись и срок действия и возвращает claims.
	ParseToken(tokenStr string) (*SessionClaims, error)
	// TTL возвращает время жизни выдаваемых токенов.
	TTL() time.Duration
}

// MakerImpl реализует Maker с использованием секретного ключа HS256.
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

// TTL возвращает время жизни токена.
func (j *MakerImpl) TTL() time.Duration { return j.tokenTTL }
