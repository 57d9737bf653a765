package get_slot

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
	msgInvalidSlotID = "некорректный идентификатор места"
	msgNotFound      = "парковочное место не найдено"
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

// Handle GET /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.GetTenant(r.Context())
	if !ok {
		h.logger.Error("GET /slots/{slotId} - Tenant context missing")
		handlers.RespondInternalError(w)
		return
	}

	// ID проверяется на форму до любого обращения к хранилищу
	slotID := mux.Vars(r)["slotId"]
	if _, err := uuid.Parse(slotID); err != nil {
		h.logger.Warn("GET /slots/{slotId} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	result, err := h.service.GetByID(r.Context(), tenant, slotID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("GET /slots/{slotId} - Slot not found: slot_id=%s, community=%s",
				slotID, tenant.CommunityCode)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /slots/{slotId} - Failed to get slot: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots/{slotId} - Slot retrieved successfully: slot_id=%s", slotID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
