package get_profile

import (
	"context"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
	"github.com/velikanov/CPS-ParkingService/internal/service/users"
)

type UserService interface {
	GetProfile(ctx context.Context, tc domain.TenantContext) (*users.ProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
