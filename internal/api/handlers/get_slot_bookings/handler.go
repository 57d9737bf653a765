package get_slot_bookings

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/velikanov/CPS-ParkingService/internal/api/handlers"
	"github.com/velikanov/CPS-ParkingService/internal/api/middleware"
	"github.com/velikanov/CPS-ParkingService/internal/service/bookings"
)

const (
	msgInvalidSlotID = "некорректный идентификатор места"
	msgNotFound      = "парковочное место не найдено"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/slots/{slotId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.GetTenant(r.Context())
	if !ok {
		h.logger.Error("GET /slots/{slotId}/bookings - Tenant context missing")
		handlers.RespondInternalError(w)
		return
	}

	slotID := mux.Vars(r)["slotId"]
	if _, err := uuid.Parse(slotID); err != nil {
		h.logger.Warn("GET /slots/{slotId}/bookings - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	result, err := h.service.ListBySlot(r.Context(), tenant, slotID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrSlotNotFound):
			h.logger.Warn("GET /slots/{slotId}/bookings - Slot not found: slot_id=%s, community=%s",
				slotID, tenant.CommunityCode)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /slots/{slotId}/bookings - Access denied: slot_id=%s, user_id=%s",
				slotID, tenant.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /slots/{slotId}/bookings - Failed to list bookings: slot_id=%s, error=%v",
				slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots/{slotId}/bookings - Bookings retrieved successfully: slot_id=%s, count=%d",
		slotID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
