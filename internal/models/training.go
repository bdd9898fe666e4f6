package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrainingStatus int

const (
	StatusPending TrainingStatus = iota
	StatusConfirmed
	StatusDeclined
)

var statusNames = map[TrainingStatus]string{
	StatusPending:   "Pending",
	StatusConfirmed: "Confirmed",
	StatusDeclined:  "Declined",
}

func (s TrainingStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "TrainingStatus(" + strconv.Itoa(int(s)) + ")"
}

func (s TrainingStatus) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// ParseStatus accepts the status name or its numeric value.
func ParseStatus(s string) (TrainingStatus, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && TrainingStatus(n).Valid() {
		return TrainingStatus(n), nil
	}
	return 0, fmt.Errorf("unknown training status %q", s)
}

func (s TrainingStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TrainingStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("status must be a string or a number: %w", err)
		}
		raw = strconv.Itoa(n)
	}
	status, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

type Training struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Date            time.Time      `gorm:"column:date;not null;uniqueIndex" json:"date"`
	Status          TrainingStatus `gorm:"column:status;not null" json:"status"`
	Recommendations *string        `gorm:"column:recommendations" json:"recommendations,omitempty"`
	UserID          uuid.UUID      `gorm:"type:uuid;column:user_id;not null;index" json:"user_id"`
	User            *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (Training) TableName() string {
	return "trainings"
}

func (t *Training) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
