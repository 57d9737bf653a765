package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velikanov/CPS-ParkingService/internal/domain"
	userRepo "github.com/velikanov/CPS-ParkingService/internal/infra/storage/user"
	"github.com/velikanov/CPS-ParkingService/pkg/ptr"
)

const testSecret = "test-secret"

type fakeUserProvider struct {
	user *domain.User
}

func (f *fakeUserProvider) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, userRepo.ErrUserNotFound
	}
	return f.user, nil
}

type fakeCommunityProvider struct {
	community *domain.Community
}

func (f *fakeCommunityProvider) GetByCode(ctx context.Context, code string) (*domain.Community, error) {
	return f.community, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func testUser() *domain.User {
	return &domain.User{
		ID:            "user-1",
		CommunityCode: ptr.Ptr("greenpark"),
		Role:          domain.RoleResident,
	}
}

func activeCommunity() *domain.Community {
	return &domain.Community{Code: "greenpark", Status: domain.CommunityActive}
}

func runAuth(t *testing.T, users UserProvider, communities CommunityProvider, authHeader string) (*httptest.ResponseRecorder, *Tenant) {
	t.Helper()

	var captured *Tenant
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tenant, ok := GetTenant(r.Context()); ok {
			captured = &tenant
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()

	Auth(testSecret, users, communities, nopLogger{})(next).ServeHTTP(rec, req)
	return rec, captured
}

func TestAuthMissingToken(t *testing.T) {
	rec, tenant := runAuth(t, &fakeUserProvider{}, &fakeCommunityProvider{}, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, tenant)
}

func TestAuthMalformedToken(t *testing.T) {
	rec, _ := runAuth(t, &fakeUserProvider{}, &fakeCommunityProvider{}, "Bearer not-a-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthWrongSignature(t *testing.T) {
	token := signToken(t, "other-secret", "user-1")
	rec, _ := runAuth(t, &fakeUserProvider{user: testUser()}, &fakeCommunityProvider{community: activeCommunity()}, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthUnknownSubject(t *testing.T) {
	token := signToken(t, testSecret, "ghost")
	rec, _ := runAuth(t, &fakeUserProvider{user: testUser()}, &fakeCommunityProvider{community: activeCommunity()}, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthUserWithoutCommunity(t *testing.T) {
	user := testUser()
	user.CommunityCode = nil
	token := signToken(t, testSecret, "user-1")

	rec, _ := runAuth(t, &fakeUserProvider{user: user}, &fakeCommunityProvider{community: activeCommunity()}, "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthInactiveCommunity(t *testing.T) {
	community := activeCommunity()
	community.Status = domain.CommunityInactive
	token := signToken(t, testSecret, "user-1")

	rec, _ := runAuth(t, &fakeUserProvider{user: testUser()}, &fakeCommunityProvider{community: community}, "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthSuccessBuildsTenantFromDatabase(t *testing.T) {
	user := testUser()
	user.Role = domain.RoleAdmin
	token := signToken(t, testSecret, "user-1")

	rec, tenant := runAuth(t, &fakeUserProvider{user: user}, &fakeCommunityProvider{community: activeCommunity()}, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, tenant)
	assert.Equal(t, "user-1", tenant.UserID)
	assert.Equal(t, "greenpark", tenant.CommunityCode)
	assert.Equal(t, domain.RoleAdmin, tenant.Role)
}
