package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
	bookingRepo "github.com/velikanov/CPS-ParkingService/internal/infra/storage/booking"
	slotRepo "github.com/velikanov/CPS-ParkingService/internal/infra/storage/slot"
	"github.com/velikanov/CPS-ParkingService/internal/service/bookings/models"
	"github.com/velikanov/CPS-ParkingService/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings   map[string]*domain.Booking
	community  map[string]string // booking ID -> community of its slot
	cancelled  []string
	lastStatus *domain.BookingStatus

	// raceStatus имитирует конкурентный переход статуса: первый Cancel
	// переводит бронирование в этот статус и сообщает, что активных
	// строк для обновления не осталось
	raceStatus *domain.BookingStatus
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:  make(map[string]*domain.Booking),
		community: make(map[string]string),
	}
}

func (f *fakeBookingRepo) add(b *domain.Booking, communityCode string) {
	f.bookings[b.ID] = b
	f.community[b.ID] = communityCode
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string, communityCode string) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok || f.community[id] != communityCode {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) ListByRenter(ctx context.Context, renterID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	f.lastStatus = status
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.RenterID != renterID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) ListBySlot(ctx context.Context, slotID string) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.SlotID == slotID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if f.raceStatus != nil {
		b.Status = *f.raceStatus
		f.raceStatus = nil
		return bookingRepo.ErrBookingNotFound
	}
	if !b.IsActive() {
		return bookingRepo.ErrBookingNotFound
	}
	now := time.Now()
	b.Status = domain.StatusCancelled
	b.CancelledAt = &now
	f.cancelled = append(f.cancelled, id)
	return nil
}

type fakeSlotGetter struct {
	slots map[string]*domain.ParkingSlot
}

func (f *fakeSlotGetter) GetByID(ctx context.Context, id string, communityCode string) (*domain.ParkingSlot, error) {
	slot, ok := f.slots[id]
	if !ok || slot.CommunityCode != communityCode {
		return nil, slotRepo.ErrSlotNotFound
	}
	return slot, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func tenant(userID string) domain.TenantContext {
	return domain.TenantContext{UserID: userID, CommunityCode: "greenpark", Role: domain.RoleResident}
}

func confirmedBooking(id string) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		SlotID:      "slot-1",
		RenterID:    "renter-1",
		SlotOwnerID: ptr.Ptr("owner-1"),
		StartTime:   time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		TotalPrice:  200,
		Status:      domain.StatusConfirmed,
	}
}

func cancelReq() *models.CancelBookingRequest {
	return &models.CancelBookingRequest{Status: "cancelled"}
}

func TestCancelRejectsNonCancelledTargetStatus(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), &fakeSlotGetter{}, nopLogger{})

	for _, status := range []string{"", "completed", "confirmed", "CANCELLED"} {
		_, err := svc.Cancel(context.Background(), tenant("renter-1"), "bk-1", &models.CancelBookingRequest{Status: status})
		assert.ErrorIs(t, err, ErrInvalidTargetStatus, "status=%q", status)
	}
}

func TestCancelByRenter(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.add(confirmedBooking("bk-1"), "greenpark")
	svc := NewService(repo, &fakeSlotGetter{}, nopLogger{})

	resp, err := svc.Cancel(context.Background(), tenant("renter-1"), "bk-1", cancelReq())
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.NotNil(t, resp.CancelledAt)
	assert.Equal(t, []string{"bk-1"}, repo.cancelled)
}

func TestCancelBySlotOwner(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.add(confirmedBooking("bk-1"), "greenpark")
	svc := NewService(repo, &fakeSlotGetter{}, nopLogger{})

	_, err := svc.Cancel(context.Background(), tenant("owner-1"), "bk-1", cancelReq())
	assert.NoError(t, err)
}

func TestCancelByStrangerIsForbidden(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.add(confirmedBooking("bk-1"), "greenpark")
	svc := NewService(repo, &fakeSlotGetter{}, nopLogger{})

	_, err := svc.Cancel(context.Background(), tenant("stranger"), "bk-1", cancelReq())
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.cancelled)
}

func TestCancelIsIdempotent(t *testing.T) {
	booking := confirmedBooking("bk-1")
	booking.Status = domain.StatusCancelled
	cancelledAt := time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC)
	booking.CancelledAt = &cancelledAt

	repo := newFakeBookingRepo()
	repo.add(booking, "greenpark")
	svc := NewService(repo, &fakeSlotGetter{}, nopLogger{})

	resp, err := svc.Cancel(context.Background(), tenant("renter-1"), "bk-1", cancelReq())
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.CancelledAt)
	assert.True(t, resp.CancelledAt.Equal(cancelledAt))
	assert.Empty(t, repo.cancelled, "repeated cancel must not touch the repository")
}

func TestCancelTerminalStatesAreImmutable(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusNoShow} {
		t.Run(string(status), func(t *testing.T) {
			booking := confirmedBooking("bk-1")
			booking.Status = status

			repo := newFakeBookingRepo()
			repo.add(booking, "greenpark")
			svc := NewService(repo, &fakeSlotGetter{}, nopLogger{})

			_, err := svc.Cancel(context.Background(), tenant("renter-1"), "bk-1", cancelReq())
			assert.ErrorIs(t, err, ErrImmutableState)
		})
	}
}

func TestCancelLostRaceToTerminalState(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.add(confirmedBooking("bk-1"), "greenpark")
	repo.raceStatus = ptr.Ptr(domain.StatusCompleted)
	svc := NewService(repo, &fakeSlotGetter{}, nopLogger{})

	_, err := svc.Cancel(context.Background(), tenant("renter-1"), "bk-1", cancelReq())
	assert.ErrorIs(t, err, ErrImmutableState)
	assert.Equal(t, domain.StatusCompleted, repo.bookings["bk-1"].Status)
}

func TestCancelLostRaceToConcurrentCancel(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.add(confirmedBooking("bk-1"), "greenpark")
	repo.raceStatus = ptr.Ptr(domain.StatusCancelled)
	svc := NewService(repo, &fakeSlotGetter{}, nopLogger{})

	resp, err := svc.Cancel(context.Background(), tenant("renter-1"), "bk-1", cancelReq())
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
}

func TestCancelCrossTenantIsNotFound(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.add(confirmedBooking("bk-1"), "riverside")
	svc := NewService(repo, &fakeSlotGetter{}, nopLogger{})

	_, err := svc.Cancel(context.Background(), tenant("renter-1"), "bk-1", cancelReq())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByIDAuthorization(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.add(confirmedBooking("bk-1"), "greenpark")
	svc := NewService(repo, &fakeSlotGetter{}, nopLogger{})

	t.Run("renter sees booking", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), tenant("renter-1"), "bk-1")
		require.NoError(t, err)
		assert.Equal(t, "bk-1", resp.ID)
	})

	t.Run("slot owner sees booking", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), tenant("owner-1"), "bk-1")
		assert.NoError(t, err)
	})

	t.Run("stranger in the same community is forbidden", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), tenant("stranger"), "bk-1")
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestListByRenterStatusFilter(t *testing.T) {
	repo := newFakeBookingRepo()
	active := confirmedBooking("bk-1")
	cancelled := confirmedBooking("bk-2")
	cancelled.Status = domain.StatusCancelled
	repo.add(active, "greenpark")
	repo.add(cancelled, "greenpark")
	svc := NewService(repo, &fakeSlotGetter{}, nopLogger{})

	t.Run("invalid status filter", func(t *testing.T) {
		_, err := svc.ListByRenter(context.Background(), tenant("renter-1"), ptr.Ptr("nonsense"))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("filter narrows result", func(t *testing.T) {
		resp, err := svc.ListByRenter(context.Background(), tenant("renter-1"), ptr.Ptr("cancelled"))
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 1)
		assert.Equal(t, "bk-2", resp.Bookings[0].ID)
	})

	t.Run("no filter returns everything", func(t *testing.T) {
		resp, err := svc.ListByRenter(context.Background(), tenant("renter-1"), nil)
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 2)
	})
}

func TestListBySlot(t *testing.T) {
	slot := &domain.ParkingSlot{
		ID:            "slot-1",
		OwnerID:       ptr.Ptr("owner-1"),
		CommunityCode: "greenpark",
		Status:        domain.SlotStatusActive,
	}
	repo := newFakeBookingRepo()
	repo.add(confirmedBooking("bk-1"), "greenpark")
	slots := &fakeSlotGetter{slots: map[string]*domain.ParkingSlot{"slot-1": slot}}
	svc := NewService(repo, slots, nopLogger{})

	t.Run("owner sees slot calendar", func(t *testing.T) {
		resp, err := svc.ListBySlot(context.Background(), tenant("owner-1"), "slot-1")
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		_, err := svc.ListBySlot(context.Background(), tenant("renter-1"), "slot-1")
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin sees slot calendar", func(t *testing.T) {
		admin := domain.TenantContext{UserID: "admin-1", CommunityCode: "greenpark", Role: domain.RoleAdmin}
		_, err := svc.ListBySlot(context.Background(), admin, "slot-1")
		assert.NoError(t, err)
	})

	t.Run("cross-tenant slot is not found", func(t *testing.T) {
		foreign := domain.TenantContext{UserID: "owner-1", CommunityCode: "riverside", Role: domain.RoleResident}
		_, err := svc.ListBySlot(context.Background(), foreign, "slot-1")
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})
}
