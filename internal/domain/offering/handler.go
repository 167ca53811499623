package offering

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/skillswap/skillswap-api/internal/middleware"
	"github.com/skillswap/skillswap-api/internal/pkg/response"
	"github.com/skillswap/skillswap-api/internal/pkg/schedule"
	"github.com/skillswap/skillswap-api/internal/pkg/validator"
)

// Handler handles offering HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates offering handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /createSkills
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

	o, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSlot):
			response.ValidationError(w, map[string]string{
				"availableTimeSlots": "Each slot must span exactly sessionDuration minutes",
			})
		default:
			log.Error().Err(err).Str("user_id", userID.String()).Msg("failed to create offering")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, NewOfferingResponse(o))
}

// List handles GET /getSkills
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	offerings, total, err := h.service.List(r.Context(), page, limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list offerings")
		response.InternalError(w)
		return
	}

	items := make([]OfferingResponse, 0, len(offerings))
	for i := range offerings {
		items = append(items, NewOfferingResponse(&offerings[i]))
	}

	pages := (total + limit - 1) / limit
	response.WithMeta(w, items, response.Meta{
		Total:   total,
		Page:    page,
		Limit:   limit,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	})
}

// Get handles GET /offerings/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid offering ID")
		return
	}

	o, booked, err := h.service.GetDetail(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Offering not found")
		default:
			log.Error().Err(err).Str("offering_id", id.String()).Msg("failed to get offering")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, DetailResponse{
		Offering:    NewOfferingResponse(o),
		BookedSlots: NewBookedSlotResponses(booked),
	})
}

// GetAvailability handles GET /offerings/{id}/availability
func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid offering ID")
		return
	}

	availability, err := h.service.GetAvailability(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Offering not found")
		case errors.Is(err, ErrInactive):
			response.NotFound(w, "Offering is no longer active")
		default:
			log.Error().Err(err).Str("offering_id", id.String()).Msg("failed to compute availability")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, availability)
}

// SuggestSlots handles GET /slots. Used by offering authoring to propose
// the slot grid for a chosen session duration.
func (h *Handler) SuggestSlots(w http.ResponseWriter, r *http.Request) {
	duration, err := strconv.Atoi(r.URL.Query().Get("duration"))
	if err != nil || duration <= 0 {
		response.BadRequest(w, "duration must be a positive number of minutes")
		return
	}

	slots := schedule.GenerateSlots(duration)
	items := make([]SlotOption, 0, len(slots))
	for _, s := range slots {
		items = append(items, SlotOption{TimeSlot: s.String(), Label: s.Label()})
	}
	response.OK(w, items)
}

// Deactivate handles DELETE /offerings/{id}
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid offering ID")
		return
	}

	if err := h.service.Deactivate(r.Context(), id, userID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "Offering not found")
		case errors.Is(err, ErrNotOwner):
			response.Forbidden(w, "Only the offering owner can deactivate it")
		default:
			log.Error().Err(err).Str("offering_id", id.String()).Msg("failed to deactivate offering")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}
