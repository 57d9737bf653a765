package get_profile

import (
	"errors"
	"net/http"

	"github.com/velikanov/CPS-ParkingService/internal/api/handlers"
	"github.com/velikanov/CPS-ParkingService/internal/api/middleware"
	"github.com/velikanov/CPS-ParkingService/internal/service/users"
)

const (
	msgNotFound = "пользователь не найден"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.GetTenant(r.Context())
	if !ok {
		h.logger.Error("GET /users/me - Tenant context missing")
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.service.GetProfile(r.Context(), tenant)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("GET /users/me - User not found: user_id=%s", tenant.UserID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /users/me - Failed to get profile: user_id=%s, error=%v",
				tenant.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/me - Profile retrieved successfully: user_id=%s", tenant.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
