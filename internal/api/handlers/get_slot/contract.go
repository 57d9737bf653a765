package get_slot

import (
	"context"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
	"github.com/velikanov/CPS-ParkingService/internal/service/slots/models"
)

type SlotService interface {
	GetByID(ctx context.Context, tc domain.TenantContext, slotID string) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
