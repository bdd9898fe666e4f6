package training

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/T-E-K-K-I-N/MarineFitBot/internal/apperr"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/logger"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/models"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/store"

	"github.com/google/uuid"
)

// DefaultLeadTime is applied when a training is requested without a date.
const DefaultLeadTime = 24 * time.Hour

const dateLayout = "02.01.2006 15:04"

type repository struct {
	trainings store.Store[models.Training]
	users     store.Store[models.User]
	now       func() time.Time
}

func NewRepository(trainings store.Store[models.Training], users store.Store[models.User]) Repository {
	return &repository{
		trainings: trainings,
		users:     users,
		now:       time.Now,
	}
}

func (r *repository) GetAll(ctx context.Context) ([]models.Training, error) {
	list, err := r.trainings.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trainings: %w", err)
	}
	return list, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Training, error) {
	t, err := r.trainings.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find training: %w", err)
	}
	return t, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.Training, error) {
	list, err := r.trainings.FindWhere(ctx, "user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("list user trainings: %w", err)
	}
	return list, nil
}

func (r *repository) GetByStatus(ctx context.Context, status models.TrainingStatus) ([]models.Training, error) {
	list, err := r.trainings.FindWhere(ctx, "status = ?", int(status))
	if err != nil {
		return nil, fmt.Errorf("list trainings by status: %w", err)
	}
	return list, nil
}

func (r *repository) Create(ctx context.Context, t *models.Training) (*models.Training, error) {
	if err := validate(t); err != nil {
		return nil, err
	}

	date, err := r.normalizeDate(t.Date)
	if err != nil {
		return nil, err
	}
	t.Date = date

	if err := r.ensureOwner(ctx, t.UserID); err != nil {
		return nil, err
	}
	if err := r.checkDateFree(ctx, t.Date, uuid.Nil); err != nil {
		return nil, err
	}

	t.Status = models.StatusPending
	if err := r.trainings.Insert(ctx, t); err != nil {
		return nil, fmt.Errorf("create training: %w", err)
	}

	logger.Info("training created", "training_id", t.ID, "user_id", t.UserID, "date", t.Date)
	return t, nil
}

func (r *repository) Update(ctx context.Context, t *models.Training) (*models.Training, error) {
	if err := validate(t); err != nil {
		return nil, err
	}

	date, err := r.normalizeDate(t.Date)
	if err != nil {
		return nil, err
	}
	t.Date = date

	existing, err := r.GetByID(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("training %s does not exist", t.ID)
	}

	// decisions go through SetStatus so the state machine and the owner
	// notification cannot be bypassed
	if t.Status != existing.Status {
		return nil, apperr.Domain("training %s is %s, use confirm or decline to change its status", t.ID, existing.Status)
	}

	if t.UserID != existing.UserID {
		if err := r.ensureOwner(ctx, t.UserID); err != nil {
			return nil, err
		}
	}
	if err := r.checkDateFree(ctx, t.Date, t.ID); err != nil {
		return nil, err
	}

	t.CreatedAt = existing.CreatedAt
	if err := r.trainings.Update(ctx, t); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("training %s does not exist", t.ID)
		}
		return nil, fmt.Errorf("update training: %w", err)
	}

	logger.Info("training updated", "training_id", t.ID)
	return t, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.trainings.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("training %s does not exist", id)
		}
		return fmt.Errorf("delete training: %w", err)
	}

	logger.Info("training deleted", "training_id", id)
	return nil
}

// SetStatus records an administrator decision. Only pending trainings can be
// decided, and the date is not re-validated so a slot that has meanwhile
// started can still be closed.
func (r *repository) SetStatus(ctx context.Context, id uuid.UUID, status models.TrainingStatus, recommendations *string) (*models.Training, error) {
	if status != models.StatusConfirmed && status != models.StatusDeclined {
		return nil, apperr.Validation("status %s is not a decision", status)
	}

	t, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("training %s does not exist", id)
	}
	if t.Status != models.StatusPending {
		return nil, apperr.Domain("training %s is already %s", id, t.Status)
	}

	t.Status = status
	if recommendations != nil {
		t.Recommendations = recommendations
	}
	if err := r.trainings.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("set training status: %w", err)
	}

	logger.Info("training status changed", "training_id", id, "status", status.String())
	return t, nil
}

// normalizeDate applies the default lead time, rejects past dates and stores
// the result in UTC at the database precision.
func (r *repository) normalizeDate(date time.Time) (time.Time, error) {
	now := r.now()
	if date.IsZero() {
		date = now.Add(DefaultLeadTime)
	}
	if date.Before(now) {
		return time.Time{}, apperr.Domain("training date %s is in the past", date.UTC().Format(dateLayout))
	}
	return date.UTC().Truncate(time.Microsecond), nil
}

func (r *repository) ensureOwner(ctx context.Context, userID uuid.UUID) error {
	_, err := r.users.FindByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return apperr.NotFound("user %s does not exist", userID)
	}
	if err != nil {
		return fmt.Errorf("find training owner: %w", err)
	}
	return nil
}

func (r *repository) checkDateFree(ctx context.Context, date time.Time, self uuid.UUID) error {
	other, err := r.trainings.FindOne(ctx, "date = ?", date)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("check training date: %w", err)
	}
	if other.ID != self {
		return apperr.Conflict("training on %s already exists", date.Format(dateLayout))
	}
	return nil
}

func validate(t *models.Training) error {
	if t == nil {
		return apperr.Validation("training must not be nil")
	}
	if t.UserID == uuid.Nil {
		return apperr.Validation("user id is required")
	}
	if !t.Status.Valid() {
		return apperr.Validation("unknown training status %d", int(t.Status))
	}
	return nil
}
