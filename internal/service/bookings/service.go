package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/velikanov/CPS-ParkingService/internal/auth"
	"github.com/velikanov/CPS-ParkingService/internal/domain"
	bookingRepo "github.com/velikanov/CPS-ParkingService/internal/infra/storage/booking"
	slotRepo "github.com/velikanov/CPS-ParkingService/internal/infra/storage/slot"
	"github.com/velikanov/CPS-ParkingService/internal/service/bookings/models"
)

// Service операции над существующими бронированиями: просмотр, история,
// отмена. Создание вынесено в отдельный usecase из-за транзакционной
// логики проверки доступности.
type Service struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Видеть бронирование могут арендатор и владелец места.
func (s *Service) GetByID(ctx context.Context, tc domain.TenantContext, bookingID string) (*models.BookingResponse, error) {
	booking, err := s.loadBooking(ctx, tc, bookingID)
	if err != nil {
		return nil, err
	}

	if !auth.CanViewBooking(booking, tc.UserID) {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", tc.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// ListByRenter получает историю бронирований вызывающего,
// опционально фильтруя по статусу
func (s *Service) ListByRenter(ctx context.Context, tc domain.TenantContext, status *string) (*models.BookingListResponse, error) {
	var domainStatus *domain.BookingStatus
	if status != nil {
		converted, err := models.ToDomainBookingStatus(*status)
		if err != nil {
			s.logger.Warn("ListByRenter: invalid status=%s for user=%s", *status, tc.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &converted
	}

	bookings, err := s.bookingRepo.ListByRenter(ctx, tc.UserID, domainStatus)
	if err != nil {
		s.logger.Error("ListByRenter: repository error for user=%s: %v", tc.UserID, err)
		return nil, fmt.Errorf("%w: ListByRenter - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// ListBySlot получает бронирования места.
// Доступно владельцу места и администратору ЖК.
func (s *Service) ListBySlot(ctx context.Context, tc domain.TenantContext, slotID string) (*models.BookingListResponse, error) {
	slot, err := s.slotRepo.GetByID(ctx, slotID, tc.CommunityCode)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("ListBySlot: slot id=%s not found in community=%s", slotID, tc.CommunityCode)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("ListBySlot: repository error for slot id=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: ListBySlot - repository error: %v", ErrInternal, err)
	}

	if !auth.CanManageSlot(slot, tc.UserID, tc.Role) {
		s.logger.Warn("ListBySlot: access denied for user=%s to slot id=%s", tc.UserID, slotID)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.ListBySlot(ctx, slotID)
	if err != nil {
		s.logger.Error("ListBySlot: repository error for slot id=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: ListBySlot - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование.
//
// Правила:
//   - запрошенный статус обязан быть строго "cancelled";
//   - отменить могут арендатор и владелец места;
//   - необратимые состояния (completed, no_show) не отменяются;
//   - повторная отмена идемпотентна: уже отменённое бронирование
//     возвращается успешно без изменений.
func (s *Service) Cancel(ctx context.Context, tc domain.TenantContext, bookingID string, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%s by user=%s", bookingID, tc.UserID)

	if req.Status != string(domain.StatusCancelled) {
		s.logger.Warn("Cancel: rejected target status=%s for booking id=%s", req.Status, bookingID)
		return nil, ErrInvalidTargetStatus
	}

	booking, err := s.loadBooking(ctx, tc, bookingID)
	if err != nil {
		return nil, err
	}

	if !auth.CanCancelBooking(booking, tc.UserID) {
		s.logger.Warn("Cancel: access denied for user=%s to booking id=%s", tc.UserID, bookingID)
		return nil, ErrAccessDenied
	}

	// Идемпотентность: повторная отмена - успех без изменений
	if booking.IsCancelled() {
		s.logger.Info("Cancel: booking id=%s already cancelled", bookingID)
		return models.FromDomainBooking(booking), nil
	}

	if booking.IsTerminal() {
		s.logger.Warn("Cancel: booking id=%s is in immutable state %s", bookingID, booking.Status)
		return nil, ErrImmutableState
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			// Хранилище обновляет только активные строки: ноль затронутых
			// строк после успешного чтения означает, что статус сменился
			// параллельным запросом. Перечитываем и решаем заново.
			current, loadErr := s.loadBooking(ctx, tc, bookingID)
			if loadErr != nil {
				return nil, loadErr
			}
			if current.IsCancelled() {
				s.logger.Info("Cancel: booking id=%s cancelled concurrently", bookingID)
				return models.FromDomainBooking(current), nil
			}
			s.logger.Warn("Cancel: booking id=%s moved to immutable state %s concurrently", bookingID, current.Status)
			return nil, ErrImmutableState
		}
		s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Перечитываем, чтобы вернуть актуальные cancelled_at/updated_at
	cancelled, err := s.loadBooking(ctx, tc, bookingID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%s", bookingID)
	return models.FromDomainBooking(cancelled), nil
}

// loadBooking загружает бронирование в пределах ЖК вызывающего.
// Бронирование из чужого ЖК возвращается как ErrBookingNotFound.
func (s *Service) loadBooking(ctx context.Context, tc domain.TenantContext, bookingID string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID, tc.CommunityCode)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("loadBooking: booking id=%s not found in community=%s", bookingID, tc.CommunityCode)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("loadBooking: repository error for booking id=%s: %v", bookingID, err)
		return nil, fmt.Errorf("%w: loadBooking - repository error: %v", ErrInternal, err)
	}

	return booking, nil
}
