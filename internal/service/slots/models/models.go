package models

import (
	"errors"
	"time"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
)

var (
	// ErrInvalidSlotType возвращается при неизвестном типе места
	ErrInvalidSlotType = errors.New("invalid slot type")

	// ErrInvalidPricingMode возвращается при неизвестном режиме ценообразования
	ErrInvalidPricingMode = errors.New("invalid pricing mode")

	// ErrInvalidStatus возвращается при неизвестном статусе места
	ErrInvalidStatus = errors.New("invalid slot status")
)

// Request модели

// CreateSlotRequest запрос на создание парковочного места.
// Владелец и ЖК не принимаются от клиента - они берутся из тенант-контекста.
type CreateSlotRequest struct {
	SlotNumber   string   `json:"slotNumber"`
	SlotType     string   `json:"slotType"`
	PricingMode  string   `json:"pricingMode"`
	PricePerHour *float64 `json:"pricePerHour,omitempty"`
}

// UpdateSlotRequest запрос на обновление места.
// CommunityCode и OwnerID объявлены намеренно: их присутствие в теле
// запроса - ошибка ImmutableFieldViolation, а не молчаливое игнорирование.
type UpdateSlotRequest struct {
	SlotNumber   string   `json:"slotNumber"`
	SlotType     string   `json:"slotType"`
	PricingMode  string   `json:"pricingMode"`
	PricePerHour *float64 `json:"pricePerHour,omitempty"`
	Status       *string  `json:"status,omitempty"`

	CommunityCode *string `json:"communityCode,omitempty"`
	OwnerID       *string `json:"ownerId,omitempty"`
}

// HasImmutableFields проверяет, пытается ли запрос изменить неизменяемые поля
func (r *UpdateSlotRequest) HasImmutableFields() bool {
	return r.CommunityCode != nil || r.OwnerID != nil
}

// Response модели

// SlotResponse ответ с данными парковочного места
type SlotResponse struct {
	ID            string   `json:"id"`
	OwnerID       *string  `json:"ownerId,omitempty"`
	CommunityCode string   `json:"communityCode"`
	SlotNumber    string   `json:"slotNumber"`
	SlotType      string   `json:"slotType"`
	PricingMode   string   `json:"pricingMode"`
	PricePerHour  *float64 `json:"pricePerHour,omitempty"`
	Status        string   `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SlotListResponse ответ со списком мест
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// Методы конвертации

// FromDomainSlot конвертирует доменную модель в DTO
func FromDomainSlot(s *domain.ParkingSlot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:            s.ID,
		OwnerID:       s.OwnerID,
		CommunityCode: s.CommunityCode,
		SlotNumber:    s.SlotNumber,
		SlotType:      string(s.SlotType),
		PricingMode:   string(s.PricingMode),
		PricePerHour:  s.PricePerHour,
		Status:        string(s.Status),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует список доменных моделей в DTO
func FromDomainSlotList(slots []*domain.ParkingSlot) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
	}

	for _, slot := range slots {
		if slotResp := FromDomainSlot(slot); slotResp != nil {
			resp.Slots = append(resp.Slots, *slotResp)
		}
	}

	return resp
}

// ToDomainSlotType конвертирует строку в domain.SlotType с валидацией.
// Пустая строка трактуется как стандартный тип.
func ToDomainSlotType(slotType string) (domain.SlotType, error) {
	if slotType == "" {
		return domain.SlotTypeStandard, nil
	}

	s := domain.SlotType(slotType)
	for _, valid := range domain.ValidSlotTypes {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidSlotType
}

// ToDomainPricingMode конвертирует строку в domain.PricingMode с валидацией
func ToDomainPricingMode(mode string) (domain.PricingMode, error) {
	m := domain.PricingMode(mode)
	if m == domain.PricingExplicit || m == domain.PricingRequestQuote {
		return m, nil
	}
	return "", ErrInvalidPricingMode
}

// ToDomainSlotStatus конвертирует строку в domain.SlotStatus с валидацией.
// Статус deleted через обновление не принимается - удаление только
// через отдельную операцию.
func ToDomainSlotStatus(status string) (domain.SlotStatus, error) {
	s := domain.SlotStatus(status)
	if s == domain.SlotStatusActive || s == domain.SlotStatusMaintenance {
		return s, nil
	}
	return "", ErrInvalidStatus
}
