package list_slots

import (
	"net/http"

	"github.com/velikanov/CPS-ParkingService/internal/api/handlers"
	"github.com/velikanov/CPS-ParkingService/internal/api/middleware"
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

// Handle GET /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.GetTenant(r.Context())
	if !ok {
		h.logger.Error("GET /slots - Tenant context missing")
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.service.List(r.Context(), tenant)
	if err != nil {
		h.logger.Error("GET /slots - Failed to list slots: community=%s, error=%v",
			tenant.CommunityCode, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /slots - Slots retrieved successfully: community=%s, count=%d",
		tenant.CommunityCode, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
