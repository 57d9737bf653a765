package delete_slot

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/velikanov/CPS-ParkingService/internal/api/handlers"
	"github.com/velikanov/CPS-ParkingService/internal/api/middleware"
	"github.com/velikanov/CPS-ParkingService/internal/service/slots"
)

const (
	msgInvalidSlotID  = "некорректный идентификатор места"
	msgNotFound       = "парковочное место не найдено"
	msgForbidden      = "доступ запрещен"
	msgActiveBookings = "у места есть активные бронирования"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.GetTenant(r.Context())
	if !ok {
		h.logger.Error("DELETE /slots/{slotId} - Tenant context missing")
		handlers.RespondInternalError(w)
		return
	}

	slotID := mux.Vars(r)["slotId"]
	if _, err := uuid.Parse(slotID); err != nil {
		h.logger.Warn("DELETE /slots/{slotId} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	err := h.service.SoftDelete(r.Context(), tenant, slotID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("DELETE /slots/{slotId} - Slot not found: slot_id=%s, community=%s",
				slotID, tenant.CommunityCode)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("DELETE /slots/{slotId} - Access denied: slot_id=%s, user_id=%s",
				slotID, tenant.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slots.ErrActiveBookingsExist):
			h.logger.Warn("DELETE /slots/{slotId} - Active bookings exist: slot_id=%s", slotID)
			handlers.RespondConflict(w, msgActiveBookings)

		default:
			h.logger.Error("DELETE /slots/{slotId} - Failed to delete slot: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /slots/{slotId} - Slot deleted successfully: slot_id=%s, user_id=%s",
		slotID, tenant.UserID)
	handlers.RespondNoContent(w)
}
