package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/T-E-K-K-I-N/MarineFitBot/internal/apperr"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/logger"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/models"
	"github.com/T-E-K-K-I-N/MarineFitBot/internal/store"

	"github.com/google/uuid"
)

type repository struct {
	users     store.Store[models.User]
	trainings store.Store[models.Training]
}

func NewRepository(users store.Store[models.User], trainings store.Store[models.Training]) Repository {
	return &repository{users: users, trainings: trainings}
}

func (r *repository) GetAll(ctx context.Context) ([]models.User, error) {
	users, err := r.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.lookup(r.users.FindByID(ctx, id))
}

func (r *repository) GetByFullName(ctx context.Context, fullName string) (*models.User, error) {
	return r.lookup(r.users.FindOne(ctx, "full_name = ?", fullName))
}

func (r *repository) GetByTelegramName(ctx context.Context, telegramName string) (*models.User, error) {
	return r.lookup(r.users.FindOne(ctx, "telegram_name = ?", normalizeHandle(telegramName)))
}

func (r *repository) lookup(u *models.User, err error) (*models.User, error) {
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (r *repository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if err := validate(u); err != nil {
		return nil, err
	}

	if err := r.checkUnique(ctx, u, uuid.Nil); err != nil {
		return nil, err
	}

	if err := r.users.Insert(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Info("user created", "user_id", u.ID, "telegram_name", u.TelegramName)
	return u, nil
}

// Update overwrites every mutable field. The linked chat id is owned by the
// bot and carried over from the stored row.
func (r *repository) Update(ctx context.Context, u *models.User) (*models.User, error) {
	if err := validate(u); err != nil {
		return nil, err
	}

	existing, err := r.GetByID(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("user %s does not exist", u.ID)
	}

	if err := r.checkUnique(ctx, u, u.ID); err != nil {
		return nil, err
	}

	u.CreatedAt = existing.CreatedAt
	u.ChatID = existing.ChatID
	if err := r.users.Update(ctx, u); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFound("user %s does not exist", u.ID)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	logger.Info("user updated", "user_id", u.ID)
	return u, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperr.NotFound("user %s does not exist", id)
	}

	_, err = r.trainings.FindOne(ctx, "user_id = ?", id)
	switch {
	case err == nil:
		return apperr.Conflict("user %s still has trainings", id)
	case !errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("check user trainings: %w", err)
	}

	if err := r.users.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFound("user %s does not exist", id)
		}
		return fmt.Errorf("delete user: %w", err)
	}

	logger.Info("user deleted", "user_id", id)
	return nil
}

func (r *repository) LinkChat(ctx context.Context, telegramName string, chatID int64) (*models.User, error) {
	u, err := r.GetByTelegramName(ctx, telegramName)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("no user registered as @%s", normalizeHandle(telegramName))
	}

	if u.ChatID != nil && *u.ChatID == chatID {
		return u, nil
	}

	u.ChatID = &chatID
	if err := r.users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("link chat: %w", err)
	}

	logger.Info("telegram chat linked", "user_id", u.ID, "chat_id", chatID)
	return u, nil
}

// checkUnique fails when another user, other than self, already holds the
// full name or the telegram handle of u.
func (r *repository) checkUnique(ctx context.Context, u *models.User, self uuid.UUID) error {
	byName, err := r.GetByFullName(ctx, u.FullName)
	if err != nil {
		return err
	}
	byHandle, err := r.GetByTelegramName(ctx, u.TelegramName)
	if err != nil {
		return err
	}

	if (byName != nil && byName.ID != self) || (byHandle != nil && byHandle.ID != self) {
		return apperr.Conflict("user with full name %q or telegram name %q already exists", u.FullName, u.TelegramName)
	}
	return nil
}

func validate(u *models.User) error {
	if u == nil {
		return apperr.Validation("user must not be nil")
	}
	u.TelegramName = normalizeHandle(u.TelegramName)
	u.FullName = strings.TrimSpace(u.FullName)

	if u.FullName == "" {
		return apperr.Validation("full name must not be empty")
	}
	if u.TelegramName == "" {
		return apperr.Validation("telegram name must not be empty")
	}
	if !u.Role.Valid() {
		return apperr.Validation("unknown role %d", int(u.Role))
	}
	return nil
}

// normalizeHandle strips surrounding blanks and the leading @ Telegram shows
// in front of usernames.
func normalizeHandle(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), "@")
}
