package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
	"github.com/velikanov/CPS-ParkingService/pkg/dbmetrics"
	"github.com/velikanov/CPS-ParkingService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL для нарушения exclusion-ограничения
const pgExclusionViolation = "23P01"

var bookingColumns = []string{
	"b.id",
	"b.slot_id",
	"b.renter_id",
	"b.slot_owner_id",
	"b.start_time",
	"b.end_time",
	"b.total_price",
	"b.status",
	"b.cancelled_at",
	"b.created_at",
	"b.updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Вставка, отклонённая exclusion-ограничением bookings_no_overlap,
// возвращается как ErrOverlappingBooking - это авторитетный ответ БД
// на гонку двух конкурентных бронирований одного места.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"slot_id",
			"renter_id",
			"slot_owner_id",
			"start_time",
			"end_time",
			"total_price",
			"status",
		).
		Values(
			booking.SlotID,
			booking.RenterID,
			booking.SlotOwnerID,
			booking.StartTime,
			booking.EndTime,
			booking.TotalPrice,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isExclusionViolation(err) {
			return nil, ErrOverlappingBooking
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID в пределах указанного ЖК.
// Принадлежность ЖК проверяется через место: бронирование из чужого ЖК
// неотличимо от несуществующего.
func (r *Repository) GetByID(ctx context.Context, id string, communityCode string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("parking_slots s ON s.id = b.slot_id").
		Where(squirrel.Eq{"b.id": id, "s.community_code": communityCode}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// ListActiveBySlotInRange получает активные бронирования места,
// пересекающие полуинтервал [start, end).
// Внутри транзакции строки блокируются (FOR UPDATE) - используется
// при создании бронирования для закрытия гонки check-then-insert.
func (r *Repository) ListActiveBySlotInRange(ctx context.Context, slotID string, start, end time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("parking_slots s ON s.id = b.slot_id").
		Where(squirrel.Eq{"b.slot_id": slotID}).
		Where(squirrel.Eq{"b.status": statusStrings(domain.ActiveBookingStatuses)}).
		Where(squirrel.Lt{"b.start_time": end}).
		Where(squirrel.Gt{"b.end_time": start}).
		OrderBy("b.start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveBySlotInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveBySlotInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountActiveEndingAfter подсчитывает активные бронирования места,
// заканчивающиеся после указанного момента.
// Используется при мягком удалении места: будущие и текущие активные
// бронирования блокируют удаление.
func (r *Repository) CountActiveEndingAfter(ctx context.Context, slotID string, after time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"slot_id": slotID}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveBookingStatuses)}).
		Where(squirrel.Gt{"end_time": after}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveEndingAfter - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveEndingAfter - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// ListByRenter получает бронирования арендатора, опционально фильтруя по статусу
func (r *Repository) ListByRenter(ctx context.Context, renterID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.renter_id": renterID}).
		OrderBy("b.start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRenter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRenter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListBySlot получает все бронирования места.
// Принадлежность места ЖК вызывающей стороны проверяется выше по стеку.
func (r *Repository) ListBySlot(ctx context.Context, slotID string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.slot_id": slotID}).
		OrderBy("b.start_time DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBySlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySlot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Cancel помечает бронирование отменённым.
// Обновляются только активные строки: бронирование, успевшее перейти
// в необратимый статус параллельным запросом, не перезаписывается,
// а ноль затронутых строк возвращается как ErrBookingNotFound.
func (r *Repository) Cancel(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveBookingStatuses)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBooking сканирует одну строку результата в доменную модель
func (r *Repository) scanBooking(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var slotOwnerID sql.NullString
	var cancelledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.SlotID,
		&booking.RenterID,
		&slotOwnerID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.TotalPrice,
		&booking.Status,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanBooking - scan booking: %v", ErrScanRow, err)
	}

	if slotOwnerID.Valid {
		booking.SlotOwnerID = &slotOwnerID.String
	}
	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var slotOwnerID sql.NullString
		var cancelledAt, createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.SlotID,
			&booking.RenterID,
			&slotOwnerID,
			&booking.StartTime,
			&booking.EndTime,
			&booking.TotalPrice,
			&booking.Status,
			&cancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		if slotOwnerID.Valid {
			booking.SlotOwnerID = &slotOwnerID.String
		}
		if cancelledAt.Valid {
			booking.CancelledAt = &cancelledAt.Time
		}
		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// statusStrings конвертирует статусы в строки для squirrel.Eq
func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// isExclusionViolation проверяет, что ошибка - нарушение exclusion-ограничения
func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgExclusionViolation
}
