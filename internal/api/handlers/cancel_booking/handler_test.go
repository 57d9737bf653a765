package cancel_booking

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/velikanov/CPS-ParkingService/internal/api/middleware"
	"github.com/velikanov/CPS-ParkingService/internal/domain"
	"github.com/velikanov/CPS-ParkingService/internal/service/bookings"
	"github.com/velikanov/CPS-ParkingService/internal/service/bookings/models"
)

type fakeBookingService struct {
	resp *models.BookingResponse
	err  error
}

func (f *fakeBookingService) Cancel(ctx context.Context, tc domain.TenantContext, bookingID string, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

const validBookingID = "5f0c9a1b-3a2d-4c8e-9b7f-1d2e3f4a5b6c"

func doRequest(t *testing.T, svc BookingService, bookingID, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(svc, nopLogger{})

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}/cancel", handler.Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+bookingID+"/cancel", bytes.NewBufferString(body))
	tenant := middleware.Tenant{UserID: "user-1", CommunityCode: "greenpark", Role: domain.RoleResident}
	req = req.WithContext(middleware.WithTenant(req.Context(), tenant))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		svcErr   error
		expected int
	}{
		{"invalid target status", bookings.ErrInvalidTargetStatus, http.StatusBadRequest},
		{"not found", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"access denied", bookings.ErrAccessDenied, http.StatusForbidden},
		{"immutable state", bookings.ErrImmutableState, http.StatusBadRequest},
		{"internal error", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeBookingService{err: tt.svcErr}, validBookingID, `{"status":"cancelled"}`)
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestHandleInvalidBookingID(t *testing.T) {
	rec := doRequest(t, &fakeBookingService{}, "42", `{"status":"cancelled"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRejectsUnknownFields(t *testing.T) {
	rec := doRequest(t, &fakeBookingService{}, validBookingID, `{"status":"cancelled","totalPrice":1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSuccess(t *testing.T) {
	resp := &models.BookingResponse{ID: validBookingID, Status: "cancelled"}
	rec := doRequest(t, &fakeBookingService{resp: resp}, validBookingID, `{"status":"cancelled"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cancelled")
}
