package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavedJob is a bookmark. The composite unique index keeps one row per
// (student, job) pair; inserts use ON CONFLICT DO NOTHING so saving twice
// is a no-op rather than an error.
type SavedJob struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_jobs_student_job" json:"student_id"`
	JobID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_saved_jobs_student_job" json:"job_id"`
	SavedAt   time.Time `gorm:"autoCreateTime" json:"saved_at"`

	Job *Job `gorm:"foreignKey:JobID" json:"job,omitempty"`
}

func (s *SavedJob) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
