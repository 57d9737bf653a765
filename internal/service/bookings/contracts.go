package bookings

import (
	"context"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string, communityCode string) (*domain.Booking, error)
	ListByRenter(ctx context.Context, renterID string, status *domain.BookingStatus) ([]*domain.Booking, error)
	ListBySlot(ctx context.Context, slotID string) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id string) error
}

// SlotRepository интерфейс репозитория мест.
// Используется для тенант-скоупинга при просмотре бронирований места.
type SlotRepository interface {
	GetByID(ctx context.Context, id string, communityCode string) (*domain.ParkingSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
