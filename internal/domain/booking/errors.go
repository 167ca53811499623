package booking

import "errors"

var (
	ErrNotFound        = errors.New("booking not found")
	ErrSlotTaken       = errors.New("one or more requested dates are already booked for this slot")
	ErrLimitExceeded   = errors.New("booking exceeds the remaining sessions for this offering")
	ErrSlotNotOffered  = errors.New("time slot is not offered")
	ErrDateUnavailable = errors.New("session date is outside the offering's availability")
	ErrDuplicateDates  = errors.New("session dates must be distinct")
	ErrNotParticipant  = errors.New("booking belongs to another user")
	ErrNotCancellable  = errors.New("only confirmed bookings can be cancelled")
)
