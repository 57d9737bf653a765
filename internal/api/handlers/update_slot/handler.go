package update_slot

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/velikanov/CPS-ParkingService/internal/api/handlers"
	"github.com/velikanov/CPS-ParkingService/internal/api/middleware"
	"github.com/velikanov/CPS-ParkingService/internal/service/slots"
	"github.com/velikanov/CPS-ParkingService/internal/service/slots/models"
)

const (
	msgInvalidSlotID      = "некорректный идентификатор места"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные парковочного места"
	msgImmutableField     = "попытка изменить неизменяемое поле"
	msgNotFound           = "парковочное место не найдено"
	msgForbidden          = "доступ запрещен"
	msgDuplicateNumber    = "место с таким номером уже существует в ЖК"
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

// Handle PUT /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.GetTenant(r.Context())
	if !ok {
		h.logger.Error("PUT /slots/{slotId} - Tenant context missing")
		handlers.RespondInternalError(w)
		return
	}

	slotID := mux.Vars(r)["slotId"]
	if _, err := uuid.Parse(slotID); err != nil {
		h.logger.Warn("PUT /slots/{slotId} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req models.UpdateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /slots/{slotId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), tenant, slotID, &req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrImmutableField):
			h.logger.Warn("PUT /slots/{slotId} - Immutable field in request: slot_id=%s, user_id=%s",
				slotID, tenant.UserID)
			handlers.RespondBadRequest(w, msgImmutableField)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("PUT /slots/{slotId} - Invalid input: slot_id=%s, error=%v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("PUT /slots/{slotId} - Slot not found: slot_id=%s, community=%s",
				slotID, tenant.CommunityCode)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("PUT /slots/{slotId} - Access denied: slot_id=%s, user_id=%s",
				slotID, tenant.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slots.ErrDuplicateSlotNumber):
			h.logger.Warn("PUT /slots/{slotId} - Duplicate slot number: slot_id=%s, community=%s",
				slotID, tenant.CommunityCode)
			handlers.RespondBadRequest(w, msgDuplicateNumber)

		default:
			h.logger.Error("PUT /slots/{slotId} - Failed to update slot: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /slots/{slotId} - Slot updated successfully: slot_id=%s, user_id=%s",
		slotID, tenant.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
