package create_booking

import (
	"time"

	createBooking "github.com/velikanov/CPS-ParkingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model.
// Арендатор и ЖК в теле не принимаются, цены структурно нет.
type CreateBookingRequest struct {
	SlotID    string `json:"slotId"`
	StartTime string `json:"startTime"` // RFC3339
	EndTime   string `json:"endTime"`   // RFC3339
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          string  `json:"id"`
	SlotID      string  `json:"slotId"`
	RenterID    string  `json:"renterId"`
	SlotOwnerID *string `json:"slotOwnerId,omitempty"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	TotalPrice  float64 `json:"totalPrice"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		SlotID:    r.SlotID,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		SlotID:      resp.SlotID,
		RenterID:    resp.RenterID,
		SlotOwnerID: resp.SlotOwnerID,
		StartTime:   resp.StartTime.Format(time.RFC3339),
		EndTime:     resp.EndTime.Format(time.RFC3339),
		TotalPrice:  resp.TotalPrice,
		Status:      resp.Status,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
