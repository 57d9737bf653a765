package update_profile

import (
	"errors"
	"net/http"

	"github.com/velikanov/CPS-ParkingService/internal/api/handlers"
	"github.com/velikanov/CPS-ParkingService/internal/api/middleware"
	"github.com/velikanov/CPS-ParkingService/internal/service/users"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные профиля"
	msgImmutableField     = "попытка изменить неизменяемое поле"
	msgNotFound           = "пользователь не найден"
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

// Handle PUT /api/v1/users/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.GetTenant(r.Context())
	if !ok {
		h.logger.Error("PUT /users/me - Tenant context missing")
		handlers.RespondInternalError(w)
		return
	}

	var req users.UpdateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /users/me - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateProfile(r.Context(), tenant, &req)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrImmutableField):
			h.logger.Warn("PUT /users/me - Immutable field in request: user_id=%s", tenant.UserID)
			handlers.RespondBadRequest(w, msgImmutableField)

		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("PUT /users/me - Invalid input: user_id=%s, error=%v", tenant.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, users.ErrUserNotFound):
			h.logger.Warn("PUT /users/me - User not found: user_id=%s", tenant.UserID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PUT /users/me - Failed to update profile: user_id=%s, error=%v",
				tenant.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /users/me - Profile updated successfully: user_id=%s", tenant.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
