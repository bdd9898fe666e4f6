package training

import (
	"context"

	"github.com/T-E-K-K-I-N/MarineFitBot/internal/models"

	"github.com/google/uuid"
)

// Repository enforces the training invariants on top of the generic store.
// Multi-row reads are ordered by date.
type Repository interface {
	GetAll(ctx context.Context) ([]models.Training, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Training, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.Training, error)
	GetByStatus(ctx context.Context, status models.TrainingStatus) ([]models.Training, error)
	Create(ctx context.Context, t *models.Training) (*models.Training, error)
	Update(ctx context.Context, t *models.Training) (*models.Training, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetStatus(ctx context.Context, id uuid.UUID, status models.TrainingStatus, recommendations *string) (*models.Training, error)
}
