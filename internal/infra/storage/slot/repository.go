package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
	"github.com/velikanov/CPS-ParkingService/pkg/dbmetrics"
	"github.com/velikanov/CPS-ParkingService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL для нарушения уникального ограничения
const pgUniqueViolation = "23505"

var slotColumns = []string{
	"id",
	"owner_id",
	"community_code",
	"slot_number",
	"slot_type",
	"pricing_mode",
	"price_per_hour",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с парковочными местами.
// Все выборки фильтруются по community_code: место из чужого ЖК
// неотличимо от несуществующего.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория парковочных мест
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое парковочное место.
// Нарушение уникальности номера внутри ЖК возвращается как ErrDuplicateSlotNumber.
func (r *Repository) Create(ctx context.Context, slot *domain.ParkingSlot) (*domain.ParkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("parking_slots").
		Columns(
			"owner_id",
			"community_code",
			"slot_number",
			"slot_type",
			"pricing_mode",
			"price_per_hour",
			"status",
		).
		Values(
			slot.OwnerID,
			slot.CommunityCode,
			slot.SlotNumber,
			slot.SlotType,
			slot.PricingMode,
			slot.PricePerHour,
			slot.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlotNumber
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// GetByID получает место по ID в пределах указанного ЖК.
// Внутри транзакции строка блокируется (FOR UPDATE) - используется
// при создании бронирования и при удалении места.
func (r *Repository) GetByID(ctx context.Context, id string, communityCode string) (*domain.ParkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("parking_slots").
		Where(squirrel.Eq{"id": id, "community_code": communityCode})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSlot(executor.QueryRowContext(ctx, query, args...))
}

// ListByCommunity получает все неудалённые места ЖК
func (r *Repository) ListByCommunity(ctx context.Context, communityCode string) ([]*domain.ParkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("parking_slots").
		Where(squirrel.Eq{"community_code": communityCode}).
		Where(squirrel.NotEq{"status": domain.SlotStatusDeleted}).
		OrderBy("slot_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByCommunity - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCommunity - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// Update обновляет изменяемые поля места в пределах ЖК.
// community_code и owner_id этим методом не изменяются.
func (r *Repository) Update(ctx context.Context, slot *domain.ParkingSlot) (*domain.ParkingSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parking_slots").
		Set("slot_number", slot.SlotNumber).
		Set("slot_type", slot.SlotType).
		Set("pricing_mode", slot.PricingMode).
		Set("price_per_hour", slot.PricePerHour).
		Set("status", slot.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slot.ID, "community_code": slot.CommunityCode}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlotNumber
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// UpdateStatus меняет статус места (в том числе мягкое удаление)
func (r *Repository) UpdateStatus(ctx context.Context, id string, communityCode string, status domain.SlotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("parking_slots").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "community_code": communityCode}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// scanSlot сканирует одну строку результата в доменную модель
func (r *Repository) scanSlot(row *sql.Row) (*domain.ParkingSlot, error) {
	var slot domain.ParkingSlot
	var ownerID sql.NullString
	var pricePerHour sql.NullFloat64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&ownerID,
		&slot.CommunityCode,
		&slot.SlotNumber,
		&slot.SlotType,
		&slot.PricingMode,
		&pricePerHour,
		&slot.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanSlot - scan slot: %v", ErrScanRow, err)
	}

	if ownerID.Valid {
		slot.OwnerID = &ownerID.String
	}
	if pricePerHour.Valid {
		slot.PricePerHour = &pricePerHour.Float64
	}
	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

// scanSlots сканирует результаты запроса в слайс мест
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.ParkingSlot, error) {
	slots := make([]*domain.ParkingSlot, 0)

	for rows.Next() {
		var slot domain.ParkingSlot
		var ownerID sql.NullString
		var pricePerHour sql.NullFloat64
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&ownerID,
			&slot.CommunityCode,
			&slot.SlotNumber,
			&slot.SlotType,
			&slot.PricingMode,
			&pricePerHour,
			&slot.Status,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		if ownerID.Valid {
			slot.OwnerID = &ownerID.String
		}
		if pricePerHour.Valid {
			slot.PricePerHour = &pricePerHour.Float64
		}
		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// isUniqueViolation проверяет, что ошибка - нарушение уникального ограничения
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation
}
