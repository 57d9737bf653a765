package create_booking

import (
	"fmt"
	"time"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.SlotID == "" {
		return fmt.Errorf("%w: slotId is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if !req.EndTime.After(req.StartTime) {
		return ErrInvalidTimeRange
	}

	// Начало не должно быть в прошлом за пределами допустимого отставания:
	// запрос "бронирую прямо сейчас" может дойти до сервера чуть позже
	// выбранного времени начала
	if req.StartTime.Before(now.Add(-domain.PastStartGrace)) {
		return ErrStartInPast
	}

	return nil
}

// validateSlotBookable проверяет, что место в принципе можно забронировать
func validateSlotBookable(slot *domain.ParkingSlot) error {
	if !slot.IsActive() {
		return fmt.Errorf("%w: slot status is %s", ErrSlotNotBookable, slot.Status)
	}

	// Места с договорной ценой мгновенно не бронируются
	if slot.PricingMode != domain.PricingExplicit {
		return fmt.Errorf("%w: slot requires a quote request", ErrSlotNotBookable)
	}

	return nil
}
