package cancel_booking

import (
	"context"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
	"github.com/velikanov/CPS-ParkingService/internal/service/bookings/models"
)

type BookingService interface {
	Cancel(ctx context.Context, tc domain.TenantContext, bookingID string, req *models.CancelBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
