package slots

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/velikanov/CPS-ParkingService/internal/auth"
	"github.com/velikanov/CPS-ParkingService/internal/domain"
	slotRepo "github.com/velikanov/CPS-ParkingService/internal/infra/storage/slot"
	"github.com/velikanov/CPS-ParkingService/internal/service/slots/models"
)

// Service реестр парковочных мест: создание, редактирование, мягкое
// удаление. Все операции выполняются в пределах ЖК вызывающего.
type Service struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр реестра мест
func NewService(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create создает парковочное место.
// Владельцем становится вызывающий, ЖК копируется из тенант-контекста.
func (s *Service) Create(ctx context.Context, tc domain.TenantContext, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Create: creating slot number=%s for user=%s in community=%s",
		req.SlotNumber, tc.UserID, tc.CommunityCode)

	slotType, pricingMode, price, err := s.validateSlotInput(req.SlotNumber, req.SlotType, req.PricingMode, req.PricePerHour)
	if err != nil {
		s.logger.Warn("Create: validation failed for user=%s: %v", tc.UserID, err)
		return nil, err
	}

	slot := &domain.ParkingSlot{
		OwnerID:       &tc.UserID,
		CommunityCode: tc.CommunityCode,
		SlotNumber:    strings.TrimSpace(req.SlotNumber),
		SlotType:      slotType,
		PricingMode:   pricingMode,
		PricePerHour:  price,
		Status:        domain.SlotStatusActive,
	}

	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		if errors.Is(err, slotRepo.ErrDuplicateSlotNumber) {
			s.logger.Warn("Create: duplicate slot number=%s in community=%s", req.SlotNumber, tc.CommunityCode)
			return nil, ErrDuplicateSlotNumber
		}
		s.logger.Error("Create: repository error for user=%s: %v", tc.UserID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created slot id=%s number=%s", created.ID, created.SlotNumber)
	return models.FromDomainSlot(created), nil
}

// GetByID получает место по ID в пределах ЖК вызывающего
func (s *Service) GetByID(ctx context.Context, tc domain.TenantContext, slotID string) (*models.SlotResponse, error) {
	slot, err := s.loadSlot(ctx, tc, slotID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainSlot(slot), nil
}

// List получает все неудалённые места ЖК вызывающего
func (s *Service) List(ctx context.Context, tc domain.TenantContext) (*models.SlotListResponse, error) {
	slots, err := s.slotRepo.ListByCommunity(ctx, tc.CommunityCode)
	if err != nil {
		s.logger.Error("List: repository error for community=%s: %v", tc.CommunityCode, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlotList(slots), nil
}

// Update обновляет место.
// Доступно владельцу места и администратору ЖК. Попытка изменить
// communityCode или ownerId отклоняется как ImmutableFieldViolation.
func (s *Service) Update(ctx context.Context, tc domain.TenantContext, slotID string, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Update: updating slot id=%s by user=%s", slotID, tc.UserID)

	if req.HasImmutableFields() {
		s.logger.Warn("Update: immutable field in payload for slot id=%s, user=%s", slotID, tc.UserID)
		return nil, ErrImmutableField
	}

	slot, err := s.loadSlot(ctx, tc, slotID)
	if err != nil {
		return nil, err
	}

	if !auth.CanManageSlot(slot, tc.UserID, tc.Role) {
		s.logger.Warn("Update: access denied for user=%s to slot id=%s", tc.UserID, slotID)
		return nil, ErrAccessDenied
	}

	if slot.IsDeleted() {
		// Удалённое место не редактируется
		return nil, ErrSlotNotFound
	}

	slotType, pricingMode, price, err := s.validateSlotInput(req.SlotNumber, req.SlotType, req.PricingMode, req.PricePerHour)
	if err != nil {
		s.logger.Warn("Update: validation failed for slot id=%s: %v", slotID, err)
		return nil, err
	}

	slot.SlotNumber = strings.TrimSpace(req.SlotNumber)
	slot.SlotType = slotType
	slot.PricingMode = pricingMode
	slot.PricePerHour = price

	if req.Status != nil {
		status, err := models.ToDomainSlotStatus(*req.Status)
		if err != nil {
			s.logger.Warn("Update: invalid status=%s for slot id=%s", *req.Status, slotID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		slot.Status = status
	}

	updated, err := s.slotRepo.Update(ctx, slot)
	if err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			return nil, ErrSlotNotFound
		case errors.Is(err, slotRepo.ErrDuplicateSlotNumber):
			s.logger.Warn("Update: duplicate slot number=%s in community=%s", req.SlotNumber, tc.CommunityCode)
			return nil, ErrDuplicateSlotNumber
		default:
			s.logger.Error("Update: repository error for slot id=%s: %v", slotID, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Update: successfully updated slot id=%s", slotID)
	return models.FromDomainSlot(updated), nil
}

// SoftDelete помечает место удалённым.
// Физическое удаление не выполняется никогда - история бронирований
// должна оставаться целостной. Активные бронирования блокируют удаление.
func (s *Service) SoftDelete(ctx context.Context, tc domain.TenantContext, slotID string) error {
	s.logger.Info("SoftDelete: deleting slot id=%s by user=%s", slotID, tc.UserID)

	slot, err := s.loadSlot(ctx, tc, slotID)
	if err != nil {
		return err
	}

	if !auth.CanManageSlot(slot, tc.UserID, tc.Role) {
		s.logger.Warn("SoftDelete: access denied for user=%s to slot id=%s", tc.UserID, slotID)
		return ErrAccessDenied
	}

	if slot.IsDeleted() {
		// Повторное удаление уже удалённого места - не ошибка
		return nil
	}

	activeCount, err := s.bookingRepo.CountActiveEndingAfter(ctx, slotID, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("SoftDelete: failed to count active bookings for slot id=%s: %v", slotID, err)
		return fmt.Errorf("%w: SoftDelete - count active bookings: %v", ErrInternal, err)
	}

	if activeCount > 0 {
		s.logger.Warn("SoftDelete: slot id=%s has %d active bookings", slotID, activeCount)
		return ErrActiveBookingsExist
	}

	if err := s.slotRepo.UpdateStatus(ctx, slotID, tc.CommunityCode, domain.SlotStatusDeleted); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		s.logger.Error("SoftDelete: repository error for slot id=%s: %v", slotID, err)
		return fmt.Errorf("%w: SoftDelete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SoftDelete: successfully deleted slot id=%s", slotID)
	return nil
}

// Вспомогательные методы

// loadSlot загружает место в пределах ЖК вызывающего.
// Место из чужого ЖК возвращается как ErrSlotNotFound, никогда как
// ErrAccessDenied - существование чужих данных не раскрывается.
func (s *Service) loadSlot(ctx context.Context, tc domain.TenantContext, slotID string) (*domain.ParkingSlot, error) {
	slot, err := s.slotRepo.GetByID(ctx, slotID, tc.CommunityCode)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("loadSlot: slot id=%s not found in community=%s", slotID, tc.CommunityCode)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("loadSlot: repository error for slot id=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: loadSlot - repository error: %v", ErrInternal, err)
	}

	return slot, nil
}

// validateSlotInput валидирует общие для создания и обновления поля.
// Правила ценообразования: explicit требует положительную ставку,
// request_quote запрещает её.
func (s *Service) validateSlotInput(slotNumber, slotType, pricingMode string, price *float64) (domain.SlotType, domain.PricingMode, *float64, error) {
	number := strings.TrimSpace(slotNumber)
	if number == "" {
		return "", "", nil, fmt.Errorf("%w: slotNumber is required", ErrInvalidInput)
	}
	if len(number) > domain.MaxSlotNumberLength {
		return "", "", nil, fmt.Errorf("%w: slotNumber is too long", ErrInvalidInput)
	}

	domainType, err := models.ToDomainSlotType(slotType)
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: invalid slotType", ErrInvalidInput)
	}

	domainMode, err := models.ToDomainPricingMode(pricingMode)
	if err != nil {
		return "", "", nil, fmt.Errorf("%w: invalid pricingMode", ErrInvalidInput)
	}

	switch domainMode {
	case domain.PricingExplicit:
		if price == nil || *price <= 0 {
			return "", "", nil, fmt.Errorf("%w: explicit pricing requires positive pricePerHour", ErrInvalidInput)
		}
	case domain.PricingRequestQuote:
		if price != nil {
			return "", "", nil, fmt.Errorf("%w: request_quote pricing forbids pricePerHour", ErrInvalidInput)
		}
	}

	return domainType, domainMode, price, nil
}
