package booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/skillswap/skillswap-api/internal/domain/credit"
	"github.com/skillswap/skillswap-api/internal/domain/offering"
	"github.com/skillswap/skillswap-api/internal/middleware"
	"github.com/skillswap/skillswap-api/internal/pkg/response"
	"github.com/skillswap/skillswap-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /createBooking
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if errs := validator.Validate(req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	b, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, offering.ErrNotFound):
			response.NotFound(w, "Offering not found")
		case errors.Is(err, offering.ErrInactive):
			response.NotFound(w, "Offering is no longer active")
		case errors.Is(err, ErrSlotNotOffered):
			response.BadRequest(w, "Time slot is not offered")
		case errors.Is(err, ErrDateUnavailable):
			response.BadRequest(w, "One or more session dates are outside the offering's availability")
		case errors.Is(err, ErrDuplicateDates):
			response.BadRequest(w, "Session dates must be distinct")
		case errors.Is(err, ErrSlotTaken):
			response.Conflict(w, "One or more requested dates are already booked for this slot")
		case errors.Is(err, ErrLimitExceeded):
			response.Conflict(w, "Booking exceeds the remaining sessions for this offering")
		case errors.Is(err, credit.ErrInsufficientCredits):
			response.PaymentRequired(w, "INSUFFICIENT_CREDITS", "Not enough credits for this booking")
		case isTransient(err):
			response.ServiceUnavailable(w, "Storage temporarily unavailable, please retry")
		default:
			log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to create booking")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, NewBookingResponse(b))
}

// ListMine handles GET /bookings/my
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	bookings, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list bookings")
		response.InternalError(w)
		return
	}

	items := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		items = append(items, NewBookingResponse(&bookings[i]))
	}
	response.OK(w, items)
}

// Cancel handles POST /bookings/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	if err := h.service.Cancel(r.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Booking not found")
		case errors.Is(err, ErrNotParticipant):
			response.Forbidden(w, "Only the requester or the provider can cancel a booking")
		case errors.Is(err, ErrNotCancellable):
			response.Conflict(w, "Only confirmed bookings can be cancelled")
		case isTransient(err):
			response.ServiceUnavailable(w, "Storage temporarily unavailable, please retry")
		default:
			log.Error().Err(err).Str("booking_id", id.String()).Msg("failed to cancel booking")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// isTransient reports whether the failure is retryable rather than a
// business rejection.
func isTransient(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
