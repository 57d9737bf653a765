package create_booking

import (
	"context"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
	createBooking "github.com/velikanov/CPS-ParkingService/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, tc domain.TenantContext, req *createBooking.Request) (*createBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
