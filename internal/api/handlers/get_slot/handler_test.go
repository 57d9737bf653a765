package get_slot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velikanov/CPS-ParkingService/internal/api/middleware"
	"github.com/velikanov/CPS-ParkingService/internal/domain"
	"github.com/velikanov/CPS-ParkingService/internal/service/slots"
	"github.com/velikanov/CPS-ParkingService/internal/service/slots/models"
)

type fakeSlotService struct {
	resp *models.SlotResponse
	err  error
}

func (f *fakeSlotService) GetByID(ctx context.Context, tc domain.TenantContext, slotID string) (*models.SlotResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

const validSlotID = "6a6e1f1e-76cb-4f9b-9f5a-30f4e22fd97e"

func doRequest(t *testing.T, svc SlotService, slotID string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(svc, nopLogger{})

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/slots/{slotId}", handler.Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots/"+slotID, nil)
	tenant := middleware.Tenant{UserID: "user-1", CommunityCode: "greenpark", Role: domain.RoleResident}
	req = req.WithContext(middleware.WithTenant(req.Context(), tenant))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandleInvalidSlotID(t *testing.T) {
	rec := doRequest(t, &fakeSlotService{}, "not-a-uuid")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSlotNotFound(t *testing.T) {
	rec := doRequest(t, &fakeSlotService{err: slots.ErrSlotNotFound}, validSlotID)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleInternalError(t *testing.T) {
	rec := doRequest(t, &fakeSlotService{err: slots.ErrInternal}, validSlotID)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleSuccess(t *testing.T) {
	resp := &models.SlotResponse{
		ID:            validSlotID,
		CommunityCode: "greenpark",
		SlotNumber:    "A-1",
		Status:        "active",
	}
	rec := doRequest(t, &fakeSlotService{resp: resp}, validSlotID)

	require.Equal(t, http.StatusOK, rec.Code)

	var body models.SlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, validSlotID, body.ID)
	assert.Equal(t, "A-1", body.SlotNumber)
}
