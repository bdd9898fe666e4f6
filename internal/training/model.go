package training

import (
	"time"

	"github.com/T-E-K-K-I-N/MarineFitBot/internal/models"

	"github.com/google/uuid"
)

type CreateTrainingRequest struct {
	UserID string `json:"user_id" binding:"required,uuid" example:"3f1c2a9e-4b7d-4c1e-9a55-0d6f2b8e7c10"`
	// Date defaults to 24 hours from now when omitted.
	Date *time.Time `json:"date,omitempty" example:"2099-01-01T10:00:00Z"`
}

type UpdateTrainingRequest struct {
	UserID          string                 `json:"user_id" binding:"required,uuid"`
	Date            *time.Time             `json:"date,omitempty"`
	Status          *models.TrainingStatus `json:"status,omitempty" swaggertype:"string" enums:"Pending,Confirmed,Declined"`
	Recommendations *string                `json:"recommendations,omitempty"`
}

type DecisionRequest struct {
	Recommendations *string `json:"recommendations,omitempty" binding:"omitempty,max=2000" example:"Bring water and a towel"`
}

// ScheduleEntry is one row of the administrator schedule.
type ScheduleEntry struct {
	TrainingID      uuid.UUID             `db:"training_id" json:"training_id"`
	Date            time.Time             `db:"date" json:"date"`
	Status          models.TrainingStatus `db:"status" json:"status"`
	Recommendations *string               `db:"recommendations" json:"recommendations,omitempty"`
	UserID          uuid.UUID             `db:"user_id" json:"user_id"`
	FullName        string                `db:"full_name" json:"full_name"`
	TelegramName    string                `db:"telegram_name" json:"telegram_name"`
}
