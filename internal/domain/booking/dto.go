package booking

import (
	"time"

	"github.com/google/uuid"
)

// CreateRequest for POST /createBooking
type CreateRequest struct {
	OfferingID   uuid.UUID `json:"offeringId" validate:"required"`
	SessionDates []string  `json:"sessionDate" validate:"required,min=1,max=50,dive,datetime=2006-01-02"`
	TimeSlot     string    `json:"timeSlot" validate:"required,time_slot"`
}

// BookingResponse represents a booking in API responses
type BookingResponse struct {
	ID                  uuid.UUID `json:"id"`
	OfferingID          uuid.UUID `json:"offeringId"`
	RequesterID         uuid.UUID `json:"requesterId"`
	TimeSlot            string    `json:"timeSlot"`
	SessionDates        []string  `json:"sessionDates"`
	TotalSessionsBooked int       `json:"totalSessionsBooked"`
	CreditsUsed         int       `json:"creditsUsed"`
	Status              string    `json:"status"`
	CreatedAt           string    `json:"createdAt"`
}

// NewBookingResponse creates BookingResponse from an entity
func NewBookingResponse(b *Booking) BookingResponse {
	return BookingResponse{
		ID:                  b.ID,
		OfferingID:          b.OfferingID,
		RequesterID:         b.RequesterID,
		TimeSlot:            b.TimeSlot,
		SessionDates:        []string(b.SessionDates),
		TotalSessionsBooked: b.TotalSessionsBooked,
		CreditsUsed:         b.CreditsUsed,
		Status:              string(b.Status),
		CreatedAt:           b.CreatedAt.Format(time.RFC3339),
	}
}
