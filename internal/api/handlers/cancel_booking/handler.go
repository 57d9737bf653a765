package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/velikanov/CPS-ParkingService/internal/api/handlers"
	"github.com/velikanov/CPS-ParkingService/internal/api/middleware"
	"github.com/velikanov/CPS-ParkingService/internal/service/bookings"
	"github.com/velikanov/CPS-ParkingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "допустим только статус cancelled"
	msgImmutableState     = "бронирование в неизменяемом статусе"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.GetTenant(r.Context())
	if !ok {
		h.logger.Error("PATCH /bookings/{bookingId}/cancel - Tenant context missing")
		handlers.RespondInternalError(w)
		return
	}

	bookingID := mux.Vars(r)["bookingId"]
	if _, err := uuid.Parse(bookingID); err != nil {
		h.logger.Warn("PATCH /bookings/{bookingId}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{bookingId}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Cancel(r.Context(), tenant, bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidTargetStatus):
			h.logger.Warn("PATCH /bookings/{bookingId}/cancel - Invalid target status: booking_id=%s, status=%q",
				bookingID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{bookingId}/cancel - Booking not found: booking_id=%s, community=%s",
				bookingID, tenant.CommunityCode)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{bookingId}/cancel - Access denied: booking_id=%s, user_id=%s",
				bookingID, tenant.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrImmutableState):
			h.logger.Warn("PATCH /bookings/{bookingId}/cancel - Immutable state: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgImmutableState)

		default:
			h.logger.Error("PATCH /bookings/{bookingId}/cancel - Failed to cancel booking: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{bookingId}/cancel - Booking cancelled successfully: booking_id=%s, user_id=%s",
		bookingID, tenant.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
