package domain

import "time"

// SlotStatus represents the lifecycle status of a parking slot
type SlotStatus string

const (
	SlotStatusActive      SlotStatus = "active"
	SlotStatusMaintenance SlotStatus = "maintenance"
	SlotStatusDeleted     SlotStatus = "deleted"
)

// PricingMode determines how a slot is priced
type PricingMode string

const (
	// PricingExplicit слот имеет фиксированную почасовую ставку и доступен
	// для мгновенного бронирования
	PricingExplicit PricingMode = "explicit"

	// PricingRequestQuote цена договорная, бронирование только через
	// личный контакт с владельцем
	PricingRequestQuote PricingMode = "request_quote"
)

// SlotType тип парковочного места
type SlotType string

const (
	SlotTypeStandard   SlotType = "standard"
	SlotTypeCompact    SlotType = "compact"
	SlotTypeOversized  SlotType = "oversized"
	SlotTypeDisabled   SlotType = "disabled"
	SlotTypeEVCharging SlotType = "ev_charging"
)

// ParkingSlot represents a rentable parking space inside a community
type ParkingSlot struct {
	ID string

	// NULL = общее место, управляется администрацией ЖК
	OwnerID *string

	// Copied from the creating user's tenant at creation time, immutable afterwards
	CommunityCode string

	SlotNumber  string
	SlotType    SlotType
	PricingMode PricingMode

	// Present iff PricingMode == PricingExplicit
	PricePerHour *float64

	Status SlotStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the slot is available for use
func (s *ParkingSlot) IsActive() bool {
	return s.Status == SlotStatusActive
}

// IsDeleted returns true if the slot has been soft-deleted
func (s *ParkingSlot) IsDeleted() bool {
	return s.Status == SlotStatusDeleted
}

// IsShared returns true if the slot has no individual owner
func (s *ParkingSlot) IsShared() bool {
	return s.OwnerID == nil
}

// IsInstantlyBookable returns true if the slot can be booked without
// out-of-band contact: active status and an explicit hourly rate
func (s *ParkingSlot) IsInstantlyBookable() bool {
	return s.Status == SlotStatusActive && s.PricingMode == PricingExplicit
}

// ValidSlotTypes все допустимые типы парковочных мест
var ValidSlotTypes = []SlotType{
	SlotTypeStandard,
	SlotTypeCompact,
	SlotTypeOversized,
	SlotTypeDisabled,
	SlotTypeEVCharging,
}

// ValidSlotStatuses все допустимые статусы места
var ValidSlotStatuses = []SlotStatus{
	SlotStatusActive,
	SlotStatusMaintenance,
	SlotStatusDeleted,
}
