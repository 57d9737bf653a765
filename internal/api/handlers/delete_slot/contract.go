package delete_slot

import (
	"context"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
)

type SlotService interface {
	SoftDelete(ctx context.Context, tc domain.TenantContext, slotID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
