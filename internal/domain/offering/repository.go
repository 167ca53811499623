package offering

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines offering data access interface
type Repository interface {
	Create(ctx context.Context, o *Offering) error
	GetByID(ctx context.Context, id uuid.UUID) (*Offering, error)
	ListActive(ctx context.Context, limit, offset int) ([]Offering, int, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

const offeringSelectColumns = `
	id, provider_id, teacher_name, skill_name, category, description,
	experience_level, prerequisites, credits_per_session, session_duration_min,
	total_sessions, total_credits, available_days, available_time_slots,
	rating, review_count, is_active, created_at, updated_at
`

// NewRepository creates new offering repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, o *Offering) error {
	query := `
		INSERT INTO offerings (
			id, provider_id, teacher_name, skill_name, category, description,
			experience_level, prerequisites, credits_per_session, session_duration_min,
			total_sessions, total_credits, available_days, available_time_slots,
			rating, review_count, is_active, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19
		)
	`
	_, err := r.db.ExecContext(ctx, query,
		o.ID, o.ProviderID, o.TeacherName, o.SkillName, o.Category, o.Description,
		o.ExperienceLevel, o.Prerequisites, o.CreditsPerSession, o.SessionDurationMin,
		o.TotalSessions, o.TotalCredits, o.AvailableDays, o.AvailableTimeSlots,
		o.Rating, o.ReviewCount, o.IsActive, o.CreatedAt, o.UpdatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Offering, error) {
	query := `SELECT ` + offeringSelectColumns + ` FROM offerings WHERE id = $1`

	var o Offering
	err := r.db.GetContext(ctx, &o, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *repository) ListActive(ctx context.Context, limit, offset int) ([]Offering, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT count(*) FROM offerings WHERE is_active = true`); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + offeringSelectColumns + `
		FROM offerings
		WHERE is_active = true
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	offerings := []Offering{}
	if err := r.db.SelectContext(ctx, &offerings, query, limit, offset); err != nil {
		return nil, 0, err
	}
	return offerings, total, nil
}

func (r *repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE offerings SET is_active = false, updated_at = now() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
