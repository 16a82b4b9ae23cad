package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	JobTypeFullTime   = "full-time"
	JobTypePartTime   = "part-time"
	JobTypeInternship = "internship"
)

type Job struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string         `gorm:"size:200;not null" json:"title"`
	Company      string         `gorm:"size:100;not null" json:"company"`
	Location     string         `gorm:"size:100" json:"location"`
	Type         string         `gorm:"size:20;not null" json:"type"`
	Description  string         `gorm:"type:text" json:"description"`
	Requirements pq.StringArray `gorm:"type:text[]" json:"requirements"`
	Skills       pq.StringArray `gorm:"type:text[]" json:"skills"`
	Eligibility  string         `gorm:"type:text" json:"eligibility"`
	Deadline     time.Time      `gorm:"not null" json:"deadline"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	PostedBy     uuid.UUID      `gorm:"type:uuid;not null;index" json:"posted_by"`
	Poster       *User          `gorm:"foreignKey:PostedBy" json:"poster,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// Expired is derived from the deadline at read time and never persisted.
func (j *Job) Expired(now time.Time) bool {
	return now.After(j.Deadline)
}
