package training

import (
	"context"
	"time"

	"github.com/T-E-K-K-I-N/MarineFitBot/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetAll(ctx context.Context) ([]models.Training, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Training), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Training, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Training), args.Error(1)
}

func (m *MockRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.Training, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Training), args.Error(1)
}

func (m *MockRepository) GetByStatus(ctx context.Context, status models.TrainingStatus) ([]models.Training, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Training), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, t *models.Training) (*models.Training, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Training), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, t *models.Training) (*models.Training, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Training), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) SetStatus(ctx context.Context, id uuid.UUID, status models.TrainingStatus, recommendations *string) (*models.Training, error) {
	args := m.Called(ctx, id, status, recommendations)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Training), args.Error(1)
}

type MockOwners struct {
	mock.Mock
}

func (m *MockOwners) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyUser(ctx context.Context, u *models.User, message string) bool {
	args := m.Called(ctx, u, message)
	return args.Bool(0)
}

type MockSchedule struct {
	mock.Mock
}

func (m *MockSchedule) Upcoming(ctx context.Context, from time.Time) ([]ScheduleEntry, error) {
	args := m.Called(ctx, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ScheduleEntry), args.Error(1)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) Request(ctx context.Context, userID uuid.UUID, date time.Time) (*models.Training, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Training), args.Error(1)
}

func (m *MockService) Confirm(ctx context.Context, id uuid.UUID, recommendations *string) (*models.Training, error) {
	args := m.Called(ctx, id, recommendations)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Training), args.Error(1)
}

func (m *MockService) Decline(ctx context.Context, id uuid.UUID, recommendations *string) (*models.Training, error) {
	args := m.Called(ctx, id, recommendations)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Training), args.Error(1)
}

func (m *MockService) UserTrainings(ctx context.Context, userID uuid.UUID) ([]models.Training, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Training), args.Error(1)
}

func (m *MockService) AdminSchedule(ctx context.Context, from time.Time) ([]ScheduleEntry, error) {
	args := m.Called(ctx, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ScheduleEntry), args.Error(1)
}
