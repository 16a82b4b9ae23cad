package service

import (
	"context"
	"errors"

	"anoa.com/campusplacement/internal/model"
	"anoa.com/campusplacement/internal/repository"
	"anoa.com/campusplacement/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SavedJobService interface {
	// Save bookmarks the job. Saving an already-saved job is a no-op.
	Save(ctx context.Context, studentID, jobID uuid.UUID) error
	// Unsave reports whether a bookmark was actually removed; removing a
	// bookmark that does not exist is not an error.
	Unsave(ctx context.Context, studentID, jobID uuid.UUID) (bool, error)
	List(ctx context.Context, studentID uuid.UUID) ([]*model.SavedJob, error)
	IsSaved(ctx context.Context, studentID, jobID uuid.UUID) (bool, error)
}

type savedJobService struct {
	saved repository.SavedJobRepository
	jobs  repository.JobRepository
}

func NewSavedJobService(saved repository.SavedJobRepository, jobs repository.JobRepository) SavedJobService {
	return &savedJobService{
		saved: saved,
		jobs:  jobs,
	}
}

func (s *savedJobService) Save(ctx context.Context, studentID, jobID uuid.UUID) error {
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.ErrNotFound, "job not found")
		}
		return err
	}

	return s.saved.Save(ctx, &model.SavedJob{
		StudentID: studentID,
		JobID:     jobID,
	})
}

func (s *savedJobService) Unsave(ctx context.Context, studentID, jobID uuid.UUID) (bool, error) {
	return s.saved.Delete(ctx, studentID, jobID)
}

func (s *savedJobService) List(ctx context.Context, studentID uuid.UUID) ([]*model.SavedJob, error) {
	return s.saved.FindByStudent(ctx, studentID)
}

func (s *savedJobService) IsSaved(ctx context.Context, studentID, jobID uuid.UUID) (bool, error) {
	return s.saved.Exists(ctx, studentID, jobID)
}
