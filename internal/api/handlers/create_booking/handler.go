package create_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/velikanov/CPS-ParkingService/internal/api/handlers"
	"github.com/velikanov/CPS-ParkingService/internal/api/middleware"
	createBooking "github.com/velikanov/CPS-ParkingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotID      = "некорректный идентификатор места"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339"
	msgInvalidTimeRange   = "конец интервала должен быть позже начала"
	msgStartInPast        = "начало интервала в прошлом"
	msgSlotNotFound       = "парковочное место не найдено"
	msgSlotNotBookable    = "место недоступно для бронирования"
	msgSlotUnavailable    = "место занято в выбранном интервале"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenant, ok := middleware.GetTenant(r.Context())
	if !ok {
		h.logger.Error("POST /bookings - Tenant context missing")
		handlers.RespondInternalError(w)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if _, err := uuid.Parse(req.SlotID); err != nil {
		h.logger.Warn("POST /bookings - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse time range: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), tenant, useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidTimeRange):
			h.logger.Warn("POST /bookings - Invalid time range: slot_id=%s, user_id=%s",
				req.SlotID, tenant.UserID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createBooking.ErrStartInPast):
			h.logger.Warn("POST /bookings - Start in past: slot_id=%s, user_id=%s",
				req.SlotID, tenant.UserID)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: slot_id=%s, error=%v", req.SlotID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: slot_id=%s, community=%s",
				req.SlotID, tenant.CommunityCode)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createBooking.ErrSlotNotBookable):
			h.logger.Warn("POST /bookings - Slot not bookable: slot_id=%s", req.SlotID)
			handlers.RespondConflict(w, msgSlotNotBookable)

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: slot_id=%s, user_id=%s",
				req.SlotID, tenant.UserID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: slot_id=%s, user_id=%s, error=%v",
				req.SlotID, tenant.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, slot_id=%s, user_id=%s",
		result.ID, req.SlotID, tenant.UserID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
