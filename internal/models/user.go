package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role int

const (
	RoleAdministrator Role = iota
	RoleClient
)

var roleNames = map[Role]string{
	RoleAdministrator: "Administrator",
	RoleClient:        "Client",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "Role(" + strconv.Itoa(int(r)) + ")"
}

func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// ParseRole accepts the role name or its numeric value.
func ParseRole(s string) (Role, error) {
	for role, name := range roleNames {
		if name == s {
			return role, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Role(n).Valid() {
		return Role(n), nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("role must be a string or a number: %w", err)
		}
		s = strconv.Itoa(n)
	}
	role, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TelegramName string     `gorm:"column:telegram_name;not null;uniqueIndex" json:"telegram_name"`
	FullName     string     `gorm:"column:full_name;not null;uniqueIndex" json:"full_name"`
	Role         Role       `gorm:"column:role;not null" json:"role"`
	ChatID       *int64     `gorm:"column:chat_id" json:"chat_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Trainings    []Training `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"trainings,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
