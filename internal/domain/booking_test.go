package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ts(hour int) time.Time {
	return time.Date(2026, 3, 10, hour, 0, 0, 0, time.UTC)
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name     string
		start1   time.Time
		end1     time.Time
		start2   time.Time
		end2     time.Time
		expected bool
	}{
		{
			name:   "identical ranges",
			start1: ts(10), end1: ts(12),
			start2: ts(10), end2: ts(12),
			expected: true,
		},
		{
			name:   "partial overlap",
			start1: ts(10), end1: ts(12),
			start2: ts(11), end2: ts(13),
			expected: true,
		},
		{
			name:   "one contains the other",
			start1: ts(9), end1: ts(14),
			start2: ts(10), end2: ts(12),
			expected: true,
		},
		{
			name:   "touching boundaries do not overlap",
			start1: ts(10), end1: ts(12),
			start2: ts(12), end2: ts(14),
			expected: false,
		},
		{
			name:   "touching boundaries reversed order",
			start1: ts(12), end1: ts(14),
			start2: ts(10), end2: ts(12),
			expected: false,
		},
		{
			name:   "disjoint ranges",
			start1: ts(8), end1: ts(9),
			start2: ts(12), end2: ts(14),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RangesOverlap(tt.start1, tt.end1, tt.start2, tt.end2))
		})
	}
}

func TestBookingOverlaps(t *testing.T) {
	booking := &Booking{StartTime: ts(10), EndTime: ts(12)}

	assert.True(t, booking.Overlaps(ts(11), ts(13)))
	assert.False(t, booking.Overlaps(ts(12), ts(14)))
}

func TestBookingStatePredicates(t *testing.T) {
	tests := []struct {
		status     BookingStatus
		active     bool
		cancelled  bool
		terminal   bool
		cancelable bool
	}{
		{StatusPending, true, false, false, true},
		{StatusConfirmed, true, false, false, true},
		{StatusCancelled, false, true, false, false},
		{StatusCompleted, false, false, true, false},
		{StatusNoShow, false, false, true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.active, b.IsActive())
			assert.Equal(t, tt.cancelled, b.IsCancelled())
			assert.Equal(t, tt.terminal, b.IsTerminal())
			assert.Equal(t, tt.cancelable, b.CanBeCancelled())
		})
	}
}
