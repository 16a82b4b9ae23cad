package dto

import "github.com/google/uuid"

type CreateApplicationRequest struct {
	JobID       uuid.UUID  `json:"job_id" binding:"required"`
	ResumeID    *uuid.UUID `json:"resume_id"`
	CoverLetter string     `json:"cover_letter"`
	Motivation  string     `json:"motivation"`
}

type UpdateApplicationStatusRequest struct {
	Status          string  `json:"status" binding:"required,oneof=accepted rejected"`
	RejectionReason *string `json:"rejection_reason"`
}

type SaveJobRequest struct {
	JobID uuid.UUID `json:"job_id" binding:"required"`
}
