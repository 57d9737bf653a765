package get_booking

import (
	"context"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
	"github.com/velikanov/CPS-ParkingService/internal/service/bookings/models"
)

type BookingService interface {
	GetByID(ctx context.Context, tc domain.TenantContext, bookingID string) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
