package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string         `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	Role         string         `gorm:"size:20;not null" json:"role"`
	Department   string         `gorm:"size:100" json:"department"`
	RollNumber   *string        `gorm:"size:50" json:"roll_number,omitempty"`
	CGPA         *float64       `json:"cgpa,omitempty"`
	Skills       pq.StringArray `gorm:"type:text[]" json:"skills"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
