package middleware

import (
	"context"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
)

// UserProvider интерфейс для загрузки пользователя по ID из сессии
type UserProvider interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// CommunityProvider интерфейс для загрузки ЖК по коду
type CommunityProvider interface {
	GetByCode(ctx context.Context, code string) (*domain.Community, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
