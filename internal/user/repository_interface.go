package user

import (
	"context"

	"github.com/T-E-K-K-I-N/MarineFitBot/internal/models"

	"github.com/google/uuid"
)

// Repository enforces the user invariants on top of the generic store.
// Get* methods return nil without an error when nothing matches.
type Repository interface {
	GetAll(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByFullName(ctx context.Context, fullName string) (*models.User, error)
	GetByTelegramName(ctx context.Context, telegramName string) (*models.User, error)
	Create(ctx context.Context, u *models.User) (*models.User, error)
	Update(ctx context.Context, u *models.User) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	LinkChat(ctx context.Context, telegramName string, chatID int64) (*models.User, error)
}
