package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
	bookingRepo "github.com/velikanov/CPS-ParkingService/internal/infra/storage/booking"
	slotRepo "github.com/velikanov/CPS-ParkingService/internal/infra/storage/slot"
)

// Код ошибки PostgreSQL для сбоя сериализации транзакции
const pgSerializationFailure = "40001"

// UseCase use case создания бронирования.
//
// Вся работа с БД идет в сериализуемой транзакции: загрузка места с
// блокировкой, проверка пересечений, расчет цены, денормализация
// владельца и вставка - одна атомарная единица. Поверх этого страхует
// exclusion-ограничение БД: его отказ при гонке двух конкурентных
// бронирований трактуется как авторитетный ErrSlotUnavailable.
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет создание бронирования от имени тенант-контекста
func (uc *UseCase) Execute(ctx context.Context, tc domain.TenantContext, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%s, slot=%s, range=[%s, %s)",
		tc.UserID, req.SlotID, req.StartTime.Format("2006-01-02 15:04"), req.EndTime.Format("2006-01-02 15:04"))

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Загружаем место в пределах ЖК вызывающего (с блокировкой FOR UPDATE).
		// Место из чужого ЖК неотличимо от несуществующего.
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID, tc.CommunityCode)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateBooking: slot id=%s not found in community=%s", req.SlotID, tc.CommunityCode)
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to get slot id=%s: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 2.2. Место должно быть активно и с явной почасовой ставкой
		if err := validateSlotBookable(slot); err != nil {
			uc.logger.Warn("CreateBooking: slot id=%s not bookable: %v", req.SlotID, err)
			return err
		}

		// 2.3. Предварительная проверка пересечений (с блокировкой строк)
		overlapping, err := uc.bookingRepo.ListActiveBySlotInRange(txCtx, req.SlotID, req.StartTime, req.EndTime)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list overlapping bookings: %v", err)
			return fmt.Errorf("%w: failed to list overlapping bookings: %v", ErrInternal, err)
		}

		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: slot id=%s occupied, %d overlapping bookings", req.SlotID, len(overlapping))
			return ErrSlotUnavailable
		}

		// 2.4. Считаем цену на сервере: ставка места, не данные клиента
		totalPrice := domain.ComputePrice(*slot.PricePerHour, req.StartTime, req.EndTime)

		// 2.5. Создаем бронирование с денормализацией владельца места
		booking := &domain.Booking{
			SlotID:   slot.ID,
			RenterID: tc.UserID,
			// Копия владельца на момент бронирования: авторизация отмены
			// не ходит обратно к месту
			SlotOwnerID: slot.OwnerID,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			TotalPrice:  totalPrice,
			Status:      domain.StatusConfirmed,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Отказ exclusion-ограничения - авторитетный ответ БД на гонку:
			// конкурентная транзакция успела занять интервал
			if errors.Is(err, bookingRepo.ErrOverlappingBooking) {
				uc.logger.Warn("CreateBooking: overlap rejected by store for slot id=%s", req.SlotID)
				return ErrSlotUnavailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Сериализуемая транзакция может не пройти commit при гонке двух
		// конкурентных бронирований (SQLSTATE 40001). Для клиента это та же
		// ситуация, что и занятый интервал
		if isSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: serialization failure for slot id=%s", req.SlotID)
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s, price=%.2f", result.ID, result.TotalPrice)

	return &Response{
		ID:          result.ID,
		SlotID:      result.SlotID,
		RenterID:    result.RenterID,
		SlotOwnerID: result.SlotOwnerID,
		StartTime:   result.StartTime,
		EndTime:     result.EndTime,
		TotalPrice:  result.TotalPrice,
		Status:      string(result.Status),
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

// isSerializationFailure проверяет, что ошибка - сбой сериализации
// транзакции. txmanager оборачивает ошибки commit через %w, поэтому
// errors.As достает исходную ошибку драйвера
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgSerializationFailure
}
