// Package availability отвечает на вопрос "можно ли забронировать место
// на этот интервал и сколько это стоит". Цена всегда считается здесь,
// на сервере - значение из запроса клиента структурно не принимается.
package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
	slotRepo "github.com/velikanov/CPS-ParkingService/internal/infra/storage/slot"
)

// Причины недоступности слота
const (
	ReasonSlotInactive  = "slot_inactive"
	ReasonRequestQuote  = "request_quote_only"
	ReasonRangeOccupied = "range_occupied"
)

// Result результат проверки доступности
type Result struct {
	Bookable bool `json:"bookable"`

	// Причина недоступности (пусто, если Bookable)
	Reason string `json:"reason,omitempty"`

	// Стоимость за интервал; считается только для бронируемых слотов
	TotalPrice *float64 `json:"totalPrice,omitempty"`
}

// Service проверка доступности и расчет стоимости
type Service struct {
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// CheckSlot проверяет, можно ли забронировать место на полуинтервал
// [start, end), и считает стоимость.
//
// Место бронируемо, если оно в ЖК вызывающего, активно, с явной
// почасовой ставкой и без пересечений с активными бронированиями.
// Места с договорной ценой мгновенно не бронируются - только личный
// контакт с владельцем.
func (s *Service) CheckSlot(ctx context.Context, tc domain.TenantContext, slotID string, start, end time.Time) (*Result, error) {
	if !end.After(start) {
		return nil, fmt.Errorf("%w: end must be after start", ErrInvalidTimeRange)
	}

	slot, err := s.slotRepo.GetByID(ctx, slotID, tc.CommunityCode)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("CheckSlot: slot id=%s not found in community=%s", slotID, tc.CommunityCode)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("CheckSlot: repository error for slot id=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: CheckSlot - repository error: %v", ErrInternal, err)
	}

	if !slot.IsActive() {
		return &Result{Bookable: false, Reason: ReasonSlotInactive}, nil
	}

	if slot.PricingMode == domain.PricingRequestQuote {
		return &Result{Bookable: false, Reason: ReasonRequestQuote}, nil
	}

	overlapping, err := s.bookingRepo.ListActiveBySlotInRange(ctx, slotID, start, end)
	if err != nil {
		s.logger.Error("CheckSlot: failed to list bookings for slot id=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: CheckSlot - list bookings: %v", ErrInternal, err)
	}

	if len(overlapping) > 0 {
		return &Result{Bookable: false, Reason: ReasonRangeOccupied}, nil
	}

	price := domain.ComputePrice(*slot.PricePerHour, start, end)
	return &Result{Bookable: true, TotalPrice: &price}, nil
}
