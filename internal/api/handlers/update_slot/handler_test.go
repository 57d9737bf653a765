package update_slot

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
	"github.com/velikanov/CPS-ParkingService/internal/service/slots"
	"github.com/velikanov/CPS-ParkingService/internal/service/slots/models"
)

type fakeSlotService struct {
	resp *models.SlotResponse
	err  error
}

func (f *fakeSlotService) Update(ctx context.Context, tc domain.TenantContext, slotID string, req *models.UpdateSlotRequest) (*models.SlotResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

const validSlotID = "b3c4d5e6-f7a8-4b9c-8d0e-1f2a3b4c5d6e"

func doRequest(t *testing.T, svc SlotService, slotID, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(svc, nopLogger{})

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/slots/{slotId}", handler.Handle).Methods(http.MethodPut)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/slots/"+slotID, bytes.NewBufferString(body))
	tenant := middleware.Tenant{UserID: "user-1", CommunityCode: "greenpark", Role: domain.RoleResident}
	req = req.WithContext(middleware.WithTenant(req.Context(), tenant))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"slotNumber":"A-13","slotType":"standard","pricingMode":"fixed","pricePerHour":60}`

func TestHandleStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		svcErr   error
		expected int
	}{
		{"immutable field", slots.ErrImmutableField, http.StatusBadRequest},
		{"invalid input", slots.ErrInvalidInput, http.StatusBadRequest},
		{"duplicate slot number", slots.ErrDuplicateSlotNumber, http.StatusBadRequest},
		{"not found", slots.ErrSlotNotFound, http.StatusNotFound},
		{"access denied", slots.ErrAccessDenied, http.StatusForbidden},
		{"internal error", slots.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeSlotService{err: tt.svcErr}, validSlotID, validBody)
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestHandleInvalidSlotID(t *testing.T) {
	rec := doRequest(t, &fakeSlotService{}, "42", validBody)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSuccess(t *testing.T) {
	resp := &models.SlotResponse{ID: validSlotID, SlotNumber: "A-13"}
	rec := doRequest(t, &fakeSlotService{resp: resp}, validSlotID, validBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "A-13")
}
