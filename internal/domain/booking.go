package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents a reservation of a parking slot for a time range
type Booking struct {
	ID       string
	SlotID   string
	RenterID string

	// Denormalized copy of the slot's owner at booking time.
	// Kept on the booking so authorization checks never join back to the slot.
	SlotOwnerID *string

	StartTime time.Time
	EndTime   time.Time

	// Always computed server-side, never taken from a request
	TotalPrice float64

	Status      BookingStatus
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its time range
// (counts for overlap checks and blocks slot deletion)
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsTerminal returns true if the booking reached an irreversible state
// (terminal bookings can never be cancelled)
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusNoShow
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Overlaps reports whether the booking's range intersects [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return RangesOverlap(b.StartTime, b.EndTime, start, end)
}

// RangesOverlap reports whether two half-open ranges [start1, end1) and
// [start2, end2) intersect. Соприкасающиеся границы пересечением не считаются.
func RangesOverlap(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && start2.Before(end1)
}

// ValidBookingStatuses все допустимые статусы бронирования
var ValidBookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}

// ActiveBookingStatuses статусы, занимающие временной диапазон.
// Используются при проверке пересечений и при запрете удаления места.
var ActiveBookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
