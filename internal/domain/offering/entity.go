package offering

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ExperienceLevel values accepted for an offering
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelExpert       = "Expert"
)

// Offering represents a teachable skill listed by a provider.
// TeacherName is denormalized from the provider at creation time and is
// not kept in sync with later profile renames.
type Offering struct {
	ID         uuid.UUID `db:"id"`
	ProviderID uuid.UUID `db:"provider_id"`

	TeacherName     string `db:"teacher_name"`
	SkillName       string `db:"skill_name"`
	Category        string `db:"category"`
	Description     string `db:"description"`
	ExperienceLevel string `db:"experience_level"`
	Prerequisites   string `db:"prerequisites"`

	CreditsPerSession  int `db:"credits_per_session"`
	SessionDurationMin int `db:"session_duration_min"`
	TotalSessions      int `db:"total_sessions"`
	TotalCredits       int `db:"total_credits"`

	AvailableDays      pq.StringArray `db:"available_days"`
	AvailableTimeSlots pq.StringArray `db:"available_time_slots"`

	Rating      float64 `db:"rating"`
	ReviewCount int     `db:"review_count"`

	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
