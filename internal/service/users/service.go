package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
	userRepo "github.com/velikanov/CPS-ParkingService/internal/infra/storage/user"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, name string, phone string) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// UpdateProfileRequest запрос на обновление профиля.
// Email, UnitNumber, CommunityCode и Role объявлены намеренно: их
// присутствие в теле запроса - ошибка, а не молчаливое игнорирование.
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty"`
	Phone *string `json:"phone,omitempty"`

	Email         *string `json:"email,omitempty"`
	UnitNumber    *string `json:"unitNumber,omitempty"`
	CommunityCode *string `json:"communityCode,omitempty"`
	Role          *string `json:"role,omitempty"`
}

// HasImmutableFields проверяет, пытается ли запрос изменить неизменяемые поля
func (r *UpdateProfileRequest) HasImmutableFields() bool {
	return r.Email != nil || r.UnitNumber != nil || r.CommunityCode != nil || r.Role != nil
}

// ProfileResponse ответ с данными профиля
type ProfileResponse struct {
	ID            string  `json:"id"`
	CommunityCode *string `json:"communityCode,omitempty"`
	Role          string  `json:"role"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	UnitNumber    string  `json:"unitNumber"`
}

// FromDomainUser конвертирует доменную модель в DTO
func FromDomainUser(u *domain.User) *ProfileResponse {
	if u == nil {
		return nil
	}

	return &ProfileResponse{
		ID:            u.ID,
		CommunityCode: u.CommunityCode,
		Role:          string(u.Role),
		Name:          u.Name,
		Phone:         u.Phone,
		Email:         u.Email,
		UnitNumber:    u.UnitNumber,
	}
}

// Service операции над профилем пользователя
type Service struct {
	userRepo UserRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса профилей
func NewService(userRepo UserRepository, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetProfile получает профиль вызывающего
func (s *Service) GetProfile(ctx context.Context, tc domain.TenantContext) (*ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, tc.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("GetProfile: repository error for user=%s: %v", tc.UserID, err)
		return nil, fmt.Errorf("%w: GetProfile - repository error: %v", ErrInternal, err)
	}

	return FromDomainUser(user), nil
}

// UpdateProfile обновляет изменяемые поля профиля (имя и телефон).
// email и unitNumber фиксируются при регистрации, communityCode - при
// привязке к ЖК; попытка их изменить отклоняется.
func (s *Service) UpdateProfile(ctx context.Context, tc domain.TenantContext, req *UpdateProfileRequest) (*ProfileResponse, error) {
	s.logger.Info("UpdateProfile: updating profile for user=%s", tc.UserID)

	if req.HasImmutableFields() {
		s.logger.Warn("UpdateProfile: immutable field in payload for user=%s", tc.UserID)
		return nil, ErrImmutableField
	}

	current, err := s.userRepo.GetByID(ctx, tc.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("UpdateProfile: repository error for user=%s: %v", tc.UserID, err)
		return nil, fmt.Errorf("%w: UpdateProfile - repository error: %v", ErrInternal, err)
	}

	name := current.Name
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
		if name == "" || len(name) > domain.MaxNameLength {
			return nil, fmt.Errorf("%w: invalid name", ErrInvalidInput)
		}
	}

	phone := current.Phone
	if req.Phone != nil {
		phone = strings.TrimSpace(*req.Phone)
		if len(phone) > domain.MaxPhoneLength {
			return nil, fmt.Errorf("%w: invalid phone", ErrInvalidInput)
		}
	}

	updated, err := s.userRepo.UpdateProfile(ctx, tc.UserID, name, phone)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("UpdateProfile: repository error for user=%s: %v", tc.UserID, err)
		return nil, fmt.Errorf("%w: UpdateProfile - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateProfile: successfully updated profile for user=%s", tc.UserID)
	return FromDomainUser(updated), nil
}
