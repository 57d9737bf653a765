package users

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
	userRepo "github.com/velikanov/CPS-ParkingService/internal/infra/storage/user"
	"github.com/velikanov/CPS-ParkingService/pkg/ptr"
)

type fakeUserRepo struct {
	user      *domain.User
	lastName  string
	lastPhone string
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, userRepo.ErrUserNotFound
	}
	return f.user, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id string, name string, phone string) (*domain.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, userRepo.ErrUserNotFound
	}
	f.lastName = name
	f.lastPhone = phone
	updated := *f.user
	updated.Name = name
	updated.Phone = phone
	return &updated, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func tenant() domain.TenantContext {
	return domain.TenantContext{UserID: "user-1", CommunityCode: "greenpark", Role: domain.RoleResident}
}

func testUser() *domain.User {
	return &domain.User{
		ID:            "user-1",
		CommunityCode: ptr.Ptr("greenpark"),
		Role:          domain.RoleResident,
		Name:          "Ivan",
		Phone:         "+7 900 000-00-00",
		Email:         "ivan@example.com",
		UnitNumber:    "12",
	}
}

func TestUpdateProfileRejectsImmutableFields(t *testing.T) {
	svc := NewService(&fakeUserRepo{user: testUser()}, nopLogger{})

	tests := []struct {
		name string
		req  UpdateProfileRequest
	}{
		{"email", UpdateProfileRequest{Email: ptr.Ptr("new@example.com")}},
		{"unitNumber", UpdateProfileRequest{UnitNumber: ptr.Ptr("13")}},
		{"communityCode", UpdateProfileRequest{CommunityCode: ptr.Ptr("riverside")}},
		{"role", UpdateProfileRequest{Role: ptr.Ptr("admin")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateProfile(context.Background(), tenant(), &tt.req)
			assert.ErrorIs(t, err, ErrImmutableField)
		})
	}
}

func TestUpdateProfileMergesPartialFields(t *testing.T) {
	repo := &fakeUserRepo{user: testUser()}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.UpdateProfile(context.Background(), tenant(), &UpdateProfileRequest{
		Name: ptr.Ptr("  Pyotr  "),
	})
	require.NoError(t, err)

	assert.Equal(t, "Pyotr", resp.Name)
	assert.Equal(t, "+7 900 000-00-00", repo.lastPhone, "unset phone keeps current value")
	assert.Equal(t, "ivan@example.com", resp.Email)
}

func TestUpdateProfileValidation(t *testing.T) {
	svc := NewService(&fakeUserRepo{user: testUser()}, nopLogger{})

	t.Run("empty name", func(t *testing.T) {
		_, err := svc.UpdateProfile(context.Background(), tenant(), &UpdateProfileRequest{Name: ptr.Ptr("   ")})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("name too long", func(t *testing.T) {
		long := strings.Repeat("a", domain.MaxNameLength+1)
		_, err := svc.UpdateProfile(context.Background(), tenant(), &UpdateProfileRequest{Name: ptr.Ptr(long)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("phone too long", func(t *testing.T) {
		long := strings.Repeat("1", domain.MaxPhoneLength+1)
		_, err := svc.UpdateProfile(context.Background(), tenant(), &UpdateProfileRequest{Phone: ptr.Ptr(long)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetProfile(t *testing.T) {
	svc := NewService(&fakeUserRepo{user: testUser()}, nopLogger{})

	resp, err := svc.GetProfile(context.Background(), tenant())
	require.NoError(t, err)
	assert.Equal(t, "user-1", resp.ID)
	assert.Equal(t, "12", resp.UnitNumber)

	_, err = svc.GetProfile(context.Background(), domain.TenantContext{UserID: "ghost"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
