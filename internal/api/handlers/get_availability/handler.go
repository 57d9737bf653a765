package get_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/velikanov/CPS-ParkingService/internal/api/handlers"
	"github.com/velikanov/CPS-ParkingService/internal/api/middleware"
	"github.com/velikanov/CPS-ParkingService/internal/service/availability"
)

const (
	msgInvalidSlotID    = "некорректный идентификатор места"
	msgInvalidTimeRange = "некорректный временной интервал, ожидается start и end в формате RFC3339"
	msgNotFound         = "парковочное место не найдено"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots/{slotId}/availability?start=...&end=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.GetTenant(r.Context())
	if !ok {
		h.logger.Error("GET /slots/{slotId}/availability - Tenant context missing")
		handlers.RespondInternalError(w)
		return
	}

	slotID := mux.Vars(r)["slotId"]
	if _, err := uuid.Parse(slotID); err != nil {
		h.logger.Warn("GET /slots/{slotId}/availability - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		h.logger.Warn("GET /slots/{slotId}/availability - Invalid start param: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeRange)
		return
	}

	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
	if err != nil {
		h.logger.Warn("GET /slots/{slotId}/availability - Invalid end param: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeRange)
		return
	}

	result, err := h.service.CheckSlot(r.Context(), tenant, slotID, start, end)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidTimeRange):
			h.logger.Warn("GET /slots/{slotId}/availability - Invalid time range: slot_id=%s", slotID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, availability.ErrSlotNotFound):
			h.logger.Warn("GET /slots/{slotId}/availability - Slot not found: slot_id=%s, community=%s",
				slotID, tenant.CommunityCode)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /slots/{slotId}/availability - Failed to check slot: slot_id=%s, error=%v",
				slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots/{slotId}/availability - Availability checked: slot_id=%s, bookable=%t",
		slotID, result.Bookable)
	handlers.RespondJSON(w, http.StatusOK, result)
}
