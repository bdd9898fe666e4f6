// Package store provides the generic persistence primitives every entity
// repository is built on. Each call runs in its own short-lived session.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/T-E-K-K-I-N/MarineFitBot/internal/apperr"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

type Store[T any] interface {
	FindAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindWhere(ctx context.Context, query string, args ...interface{}) ([]T, error)
	FindOne(ctx context.Context, query string, args ...interface{}) (*T, error)
	Insert(ctx context.Context, entity *T) error
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormStore[T any] struct {
	db    *gorm.DB
	order string
}

// New returns a Store backed by db. Multi-row reads are sorted by order.
func New[T any](db *gorm.DB, order string) Store[T] {
	return &gormStore[T]{db: db, order: order}
}

func (s *gormStore[T]) session(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *gormStore[T]) FindAll(ctx context.Context) ([]T, error) {
	var items []T
	if err := s.session(ctx).Order(s.order).Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (s *gormStore[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	return s.FindOne(ctx, "id = ?", id)
}

func (s *gormStore[T]) FindWhere(ctx context.Context, query string, args ...interface{}) ([]T, error) {
	var items []T
	if err := s.session(ctx).Where(query, args...).Order(s.order).Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	return items, nil
}

func (s *gormStore[T]) FindOne(ctx context.Context, query string, args ...interface{}) (*T, error) {
	var item T
	err := s.session(ctx).Where(query, args...).Take(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, translate(err)
	}
	return &item, nil
}

func (s *gormStore[T]) Insert(ctx context.Context, entity *T) error {
	return translate(s.session(ctx).Omit(clause.Associations).Create(entity).Error)
}

// Update overwrites every column of the stored row, zero values included.
func (s *gormStore[T]) Update(ctx context.Context, entity *T) error {
	res := s.session(ctx).Model(entity).Select("*").Omit(clause.Associations).Updates(entity)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore[T]) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.session(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// translate maps constraint violations reported by the driver to
// apperr.ErrConflict so callers see the same kind as for checked conflicts.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %v", apperr.ErrConflict, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation", "foreign_key_violation":
			return fmt.Errorf("%w: %s", apperr.ErrConflict, pqErr.Message)
		}
	}
	return err
}
