package offering

import (
	"time"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap-api/internal/pkg/schedule"
)

// CreateRequest for POST /createSkills
type CreateRequest struct {
	SkillName          string   `json:"skillName" validate:"required,min=3,max=100"`
	Category           string   `json:"category" validate:"max=100"`
	Description        string   `json:"description" validate:"required,min=20,max=2000"`
	ExperienceLevel    string   `json:"experienceLevel" validate:"required,experience_level"`
	Prerequisites      string   `json:"prerequisites" validate:"max=2000"`
	CreditsPerSession  int      `json:"creditsPerSession" validate:"required,gte=1,lte=10"`
	SessionDuration    int      `json:"sessionDuration" validate:"required,gte=1"`
	TotalSessions      int      `json:"totalSessions" validate:"required,gte=1,lte=50"`
	AvailableDays      []string `json:"availableDays" validate:"required,min=1,dive,weekday"`
	AvailableTimeSlots []string `json:"availableTimeSlots" validate:"required,min=1,dive,time_slot"`
}

// OfferingResponse represents an offering in API responses
type OfferingResponse struct {
	ID                 uuid.UUID `json:"id"`
	ProviderID         uuid.UUID `json:"providerId"`
	TeacherName        string    `json:"teacherName"`
	SkillName          string    `json:"skillName"`
	Category           string    `json:"category,omitempty"`
	Description        string    `json:"description"`
	ExperienceLevel    string    `json:"experienceLevel"`
	Prerequisites      string    `json:"prerequisites,omitempty"`
	CreditsPerSession  int       `json:"creditsPerSession"`
	SessionDuration    int       `json:"sessionDuration"`
	TotalSessions      int       `json:"totalSessions"`
	TotalCredits       int       `json:"totalCredits"`
	AvailableDays      []string  `json:"availableDays"`
	AvailableTimeSlots []string  `json:"availableTimeSlots"`
	Rating             float64   `json:"rating"`
	ReviewCount        int       `json:"reviewCount"`
	IsActive           bool      `json:"isActive"`
	CreatedAt          string    `json:"createdAt"`
}

// NewOfferingResponse creates OfferingResponse from an entity
func NewOfferingResponse(o *Offering) OfferingResponse {
	return OfferingResponse{
		ID:                 o.ID,
		ProviderID:         o.ProviderID,
		TeacherName:        o.TeacherName,
		SkillName:          o.SkillName,
		Category:           o.Category,
		Description:        o.Description,
		ExperienceLevel:    o.ExperienceLevel,
		Prerequisites:      o.Prerequisites,
		CreditsPerSession:  o.CreditsPerSession,
		SessionDuration:    o.SessionDurationMin,
		TotalSessions:      o.TotalSessions,
		TotalCredits:       o.TotalCredits,
		AvailableDays:      []string(o.AvailableDays),
		AvailableTimeSlots: []string(o.AvailableTimeSlots),
		Rating:             o.Rating,
		ReviewCount:        o.ReviewCount,
		IsActive:           o.IsActive,
		CreatedAt:          o.CreatedAt.Format(time.RFC3339),
	}
}

// BookedSlotResponse is one already-reserved (date, slot) pair
type BookedSlotResponse struct {
	SessionDate string `json:"sessionDate"`
	TimeSlot    string `json:"timeSlot"`
}

// DetailResponse for GET /offerings/{id}
type DetailResponse struct {
	Offering    OfferingResponse     `json:"offering"`
	BookedSlots []BookedSlotResponse `json:"bookedSlots"`
}

// SlotOption is a proposed authoring slot for a session duration
type SlotOption struct {
	TimeSlot string `json:"timeSlot"`
	Label    string `json:"label"`
}

// SlotAvailability is one time slot with its bookable dates and display label
type SlotAvailability struct {
	TimeSlot string   `json:"timeSlot"`
	Label    string   `json:"label"`
	Dates    []string `json:"dates"`
}

// AvailabilityResponse for GET /offerings/{id}/availability
type AvailabilityResponse struct {
	OfferingID  uuid.UUID          `json:"offeringId"`
	HorizonDays int                `json:"horizonDays"`
	Slots       []SlotAvailability `json:"slots"`
}

// NewBookedSlotResponses formats booked pairs for the API
func NewBookedSlotResponses(booked []schedule.BookedSlot) []BookedSlotResponse {
	out := make([]BookedSlotResponse, 0, len(booked))
	for _, b := range booked {
		out = append(out, BookedSlotResponse{
			SessionDate: schedule.DateKey(b.Date).Format("2006-01-02"),
			TimeSlot:    b.TimeSlot,
		})
	}
	return out
}
