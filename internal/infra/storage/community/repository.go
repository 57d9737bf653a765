package community

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
	"github.com/velikanov/CPS-ParkingService/pkg/dbmetrics"
	"github.com/velikanov/CPS-ParkingService/pkg/psqlbuilder"
)

var (
	// ErrCommunityNotFound возвращается, когда ЖК не найден
	ErrCommunityNotFound = errors.New("community.repository: community not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("community.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("community.repository: failed to scan row")
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы со справочником ЖК
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ЖК
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCode получает ЖК по коду
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Community, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"code",
		"name",
		"status",
		"created_at",
		"updated_at",
	).
		From("communities").
		Where(squirrel.Eq{"code": code}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	var community domain.Community
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&community.Code,
		&community.Name,
		&community.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCommunityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan community: %v", ErrScanRow, err)
	}

	community.CreatedAt = createdAt.Time
	community.UpdatedAt = updatedAt.Time

	return &community, nil
}
