package create_slot

import (
	"errors"
	"net/http"

	"github.com/velikanov/CPS-ParkingService/internal/api/handlers"
	"github.com/velikanov/CPS-ParkingService/internal/api/middleware"
	"github.com/velikanov/CPS-ParkingService/internal/service/slots"
	"github.com/velikanov/CPS-ParkingService/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные парковочного места"
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

// Handle POST /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.GetTenant(r.Context())
	if !ok {
		h.logger.Error("POST /slots - Tenant context missing")
		handlers.RespondInternalError(w)
		return
	}

	var req models.CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), tenant, &req)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /slots - Invalid input: user_id=%s, error=%v", tenant.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, slots.ErrDuplicateSlotNumber):
			h.logger.Warn("POST /slots - Duplicate slot number: community=%s, number=%s",
				tenant.CommunityCode, req.SlotNumber)
			handlers.RespondBadRequest(w, msgDuplicateNumber)

		default:
			h.logger.Error("POST /slots - Failed to create slot: user_id=%s, error=%v", tenant.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots - Slot created successfully: slot_id=%s, community=%s, owner=%s",
		result.ID, tenant.CommunityCode, tenant.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
