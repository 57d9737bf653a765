package availability

import (
	"context"
	"time"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
)

// SlotRepository интерфейс репозитория мест
type SlotRepository interface {
	GetByID(ctx context.Context, id string, communityCode string) (*domain.ParkingSlot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListActiveBySlotInRange(ctx context.Context, slotID string, start, end time.Time) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
