package training

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type ScheduleReader interface {
	Upcoming(ctx context.Context, from time.Time) ([]ScheduleEntry, error)
}

// scheduleRepository reads the administrator schedule with a single join
// instead of loading every owner through the ORM.
type scheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) ScheduleReader {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) Upcoming(ctx context.Context, from time.Time) ([]ScheduleEntry, error) {
	query := `
		SELECT t.id AS training_id, t.date, t.status, t.recommendations,
		       u.id AS user_id, u.full_name, u.telegram_name
		FROM trainings t
		JOIN users u ON u.id = t.user_id
		WHERE t.date >= $1
		ORDER BY t.date ASC
	`

	var entries []ScheduleEntry
	if err := r.db.SelectContext(ctx, &entries, query, from.UTC()); err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	return entries, nil
}
