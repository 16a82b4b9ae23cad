package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

// Application has a composite unique index on (student_id, job_id) so a
// student can hold at most one application per job regardless of request
// interleaving.
type Application struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_applications_student_job" json:"student_id"`
	JobID           uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_applications_student_job" json:"job_id"`
	ResumeID        *uuid.UUID `gorm:"type:uuid" json:"resume_id,omitempty"`
	CoverLetter     string     `gorm:"type:text" json:"cover_letter"`
	Motivation      string     `gorm:"type:text" json:"motivation"`
	Status          string     `gorm:"size:20;not null;default:pending" json:"status"`
	RejectionReason *string    `gorm:"type:text" json:"rejection_reason,omitempty"`
	AppliedAt       time.Time  `gorm:"autoCreateTime" json:"applied_at"`

	Student *User   `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Job     *Job    `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Resume  *Resume `gorm:"foreignKey:ResumeID;constraint:OnDelete:SET NULL" json:"resume,omitempty"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
