package training

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/T-E-K-K-I-N/MarineFitBot/internal/logger"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/metrics"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/models"

	"github.com/google/uuid"
)

// Notifier delivers a message to a user over Telegram and reports success.
type Notifier interface {
	NotifyUser(ctx context.Context, u *models.User, message string) bool
}

type OwnerFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type Service interface {
	Request(ctx context.Context, userID uuid.UUID, date time.Time) (*models.Training, error)
	Confirm(ctx context.Context, id uuid.UUID, recommendations *string) (*models.Training, error)
	Decline(ctx context.Context, id uuid.UUID, recommendations *string) (*models.Training, error)
	UserTrainings(ctx context.Context, userID uuid.UUID) ([]models.Training, error)
	AdminSchedule(ctx context.Context, from time.Time) ([]ScheduleEntry, error)
}

type service struct {
	repo     Repository
	owners   OwnerFinder
	schedule ScheduleReader
	notifier Notifier
}

func NewService(repo Repository, owners OwnerFinder, schedule ScheduleReader, notifier Notifier) Service {
	return &service{
		repo:     repo,
		owners:   owners,
		schedule: schedule,
		notifier: notifier,
	}
}

func (s *service) Request(ctx context.Context, userID uuid.UUID, date time.Time) (*models.Training, error) {
	t, err := s.repo.Create(ctx, &models.Training{UserID: userID, Date: date})
	if err != nil {
		return nil, err
	}
	metrics.RecordTrainingRequested()
	return t, nil
}

func (s *service) Confirm(ctx context.Context, id uuid.UUID, recommendations *string) (*models.Training, error) {
	return s.decide(ctx, id, models.StatusConfirmed, recommendations)
}

func (s *service) Decline(ctx context.Context, id uuid.UUID, recommendations *string) (*models.Training, error) {
	return s.decide(ctx, id, models.StatusDeclined, recommendations)
}

// decide stores the decision first; the owner is told afterwards and a failed
// notification does not undo it.
func (s *service) decide(ctx context.Context, id uuid.UUID, status models.TrainingStatus, recommendations *string) (*models.Training, error) {
	t, err := s.repo.SetStatus(ctx, id, status, recommendations)
	if err != nil {
		return nil, err
	}
	metrics.RecordTrainingDecision(status.String())

	owner, err := s.owners.GetByID(ctx, t.UserID)
	if err != nil || owner == nil {
		logger.Warn("training owner not loaded, skipping notification",
			"training_id", t.ID,
			"user_id", t.UserID,
			"error", err,
		)
		return t, nil
	}

	if !s.notifier.NotifyUser(ctx, owner, decisionMessage(t)) {
		logger.Warn("owner was not notified about decision", "training_id", t.ID, "user_id", owner.ID)
	}
	return t, nil
}

func (s *service) UserTrainings(ctx context.Context, userID uuid.UUID) ([]models.Training, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) AdminSchedule(ctx context.Context, from time.Time) ([]ScheduleEntry, error) {
	return s.schedule.Upcoming(ctx, from)
}

func decisionMessage(t *models.Training) string {
	when := t.Date.UTC().Format(dateLayout)

	var msg string
	switch t.Status {
	case models.StatusConfirmed:
		msg = fmt.Sprintf("✅ Your training on <b>%s UTC</b> is confirmed.", when)
	default:
		msg = fmt.Sprintf("❌ Your training on <b>%s UTC</b> was declined.", when)
	}

	if t.Recommendations != nil && *t.Recommendations != "" {
		msg += "\n\n<i>Recommendations:</i> " + html.EscapeString(*t.Recommendations)
	}
	return msg
}
