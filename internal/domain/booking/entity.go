package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Status represents booking lifecycle status
type Status string

const (
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Booking reserves a set of session dates in one time slot of an offering.
// ProviderID is copied from the offering so the completion sweep can credit
// the provider without a join. Slot/date uniqueness is enforced by the
// booking_slot_dates claim table, whose rows exist only while the booking
// is CONFIRMED.
type Booking struct {
	ID          uuid.UUID `db:"id"`
	OfferingID  uuid.UUID `db:"offering_id"`
	RequesterID uuid.UUID `db:"requester_id"`
	ProviderID  uuid.UUID `db:"provider_id"`

	TimeSlot            string         `db:"time_slot"`
	SessionDates        pq.StringArray `db:"session_dates"`
	LastSessionDate     time.Time      `db:"last_session_date"`
	TotalSessionsBooked int            `db:"total_sessions_booked"`
	CreditsUsed         int            `db:"credits_used"`

	Status    Status    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ReferenceID is the ledger reference shared by this booking's debit,
// refund and provider-credit entries.
func (b *Booking) ReferenceID() string {
	return "booking:" + b.ID.String()
}
