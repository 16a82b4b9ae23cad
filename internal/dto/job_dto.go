package dto

import (
	"time"

	"anoa.com/campusplacement/internal/model"
)

type CreateJobRequest struct {
	Title        string    `json:"title" binding:"required,max=200"`
	Company      string    `json:"company" binding:"required,max=100"`
	Location     string    `json:"location" binding:"max=100"`
	Type         string    `json:"type" binding:"required,oneof=full-time part-time internship"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Skills       []string  `json:"skills"`
	Eligibility  string    `json:"eligibility"`
	Deadline     time.Time `json:"deadline" binding:"required"`
	IsActive     *bool     `json:"is_active"`
}

type UpdateJobRequest struct {
	Title        *string    `json:"title" binding:"omitempty,max=200"`
	Company      *string    `json:"company" binding:"omitempty,max=100"`
	Location     *string    `json:"location" binding:"omitempty,max=100"`
	Type         *string    `json:"type" binding:"omitempty,oneof=full-time part-time internship"`
	Description  *string    `json:"description"`
	Requirements []string   `json:"requirements"`
	Skills       []string   `json:"skills"`
	Eligibility  *string    `json:"eligibility"`
	Deadline     *time.Time `json:"deadline"`
	IsActive     *bool      `json:"is_active"`
}

type JobFilter struct {
	Location string `form:"location"`
	Type     string `form:"type" binding:"omitempty,oneof=full-time part-time internship"`
	Search   string `form:"search"`
}

// JobView decorates a job with the read-time derived fields.
type JobView struct {
	*model.Job
	Expired       bool `json:"expired"`
	SavedByUser   bool `json:"saved_by_user"`
	AppliedByUser bool `json:"applied_by_user"`
}

// JobDetail additionally carries the applicant count, populated only for the
// owning faculty.
type JobDetail struct {
	JobView
	ApplicantCount *int64 `json:"applicant_count,omitempty"`
}
