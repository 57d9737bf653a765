package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
	"github.com/velikanov/CPS-ParkingService/pkg/dbmetrics"
	"github.com/velikanov/CPS-ParkingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

var userColumns = []string{
	"id",
	"community_code",
	"role",
	"name",
	"phone",
	"email",
	"unit_number",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с пользователями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает пользователя по ID.
// Используется resolver'ом тенант-контекста: ЖК и роль берутся только
// отсюда, никогда из данных запроса.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanUser(executor.QueryRowContext(ctx, query, args...))
}

// UpdateProfile обновляет изменяемые поля профиля (имя и телефон).
// email, unit_number, community_code и role этим методом не изменяются.
func (r *Repository) UpdateProfile(ctx context.Context, id string, name string, phone string) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("name", name).
		Set("phone", phone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + columnList()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateProfile - build update query: %v", ErrBuildQuery, err)
	}

	return r.scanUser(executor.QueryRowContext(ctx, query, args...))
}

// columnList возвращает список колонок для RETURNING
func columnList() string {
	list := ""
	for i, c := range userColumns {
		if i > 0 {
			list += ", "
		}
		list += c
	}
	return list
}

// scanUser сканирует строку результата в доменную модель
func (r *Repository) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var communityCode sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&user.ID,
		&communityCode,
		&user.Role,
		&user.Name,
		&user.Phone,
		&user.Email,
		&user.UnitNumber,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanUser - scan user: %v", ErrScanRow, err)
	}

	if communityCode.Valid {
		user.CommunityCode = &communityCode.String
	}
	user.CreatedAt = createdAt.Time
	user.UpdatedAt = updatedAt.Time

	return &user, nil
}
