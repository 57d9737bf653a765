// Package auth содержит чистые предикаты авторизации.
// Все проверки прав владения и ролей проходят через этот пакет, чтобы
// логика не дублировалась между операциями над местами и бронированиями.
package auth

import "github.com/velikanov/CPS-ParkingService/internal/domain"

// IsAdmin проверяет, что пользователь - администратор своего ЖК
func IsAdmin(role domain.Role) bool {
	return role == domain.RoleAdmin
}

// IsSlotOwner проверяет, что пользователь - владелец места.
// Общие места (без владельца) не принадлежат никому.
func IsSlotOwner(slot *domain.ParkingSlot, userID string) bool {
	return slot.OwnerID != nil && *slot.OwnerID == userID
}

// CanManageSlot проверяет право редактировать или удалять место:
// владелец места или администратор ЖК
func CanManageSlot(slot *domain.ParkingSlot, userID string, role domain.Role) bool {
	return IsSlotOwner(slot, userID) || IsAdmin(role)
}

// IsBookingRenter проверяет, что пользователь - арендатор по бронированию
func IsBookingRenter(booking *domain.Booking, userID string) bool {
	return booking.RenterID == userID
}

// IsBookingSlotOwner проверяет, что пользователь - владелец места по
// денормализованной ссылке на бронировании (без джойна к месту)
func IsBookingSlotOwner(booking *domain.Booking, userID string) bool {
	return booking.SlotOwnerID != nil && *booking.SlotOwnerID == userID
}

// CanViewBooking проверяет право видеть бронирование:
// арендатор или владелец места
func CanViewBooking(booking *domain.Booking, userID string) bool {
	return IsBookingRenter(booking, userID) || IsBookingSlotOwner(booking, userID)
}

// CanCancelBooking проверяет право отменить бронирование:
// арендатор или владелец места
func CanCancelBooking(booking *domain.Booking, userID string) bool {
	return IsBookingRenter(booking, userID) || IsBookingSlotOwner(booking, userID)
}
