package update_profile

import (
	"context"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
	"github.com/velikanov/CPS-ParkingService/internal/service/users"
)

type UserService interface {
	UpdateProfile(ctx context.Context, tc domain.TenantContext, req *users.UpdateProfileRequest) (*users.ProfileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
