package slots

import (
	"context"
	"time"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
)

// SlotRepository интерфейс репозитория парковочных мест
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.ParkingSlot) (*domain.ParkingSlot, error)
	GetByID(ctx context.Context, id string, communityCode string) (*domain.ParkingSlot, error)
	ListByCommunity(ctx context.Context, communityCode string) ([]*domain.ParkingSlot, error)
	Update(ctx context.Context, slot *domain.ParkingSlot) (*domain.ParkingSlot, error)
	UpdateStatus(ctx context.Context, id string, communityCode string, status domain.SlotStatus) error
}

// BookingRepository интерфейс репозитория бронирований.
// Используется при удалении места: активные бронирования блокируют удаление.
type BookingRepository interface {
	CountActiveEndingAfter(ctx context.Context, slotID string, after time.Time) (int, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
