package get_availability

import (
	"context"
	"time"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
	"github.com/velikanov/CPS-ParkingService/internal/service/availability"
)

type AvailabilityService interface {
	CheckSlot(ctx context.Context, tc domain.TenantContext, slotID string, start, end time.Time) (*availability.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
