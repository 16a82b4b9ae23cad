package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"anoa.com/campusplacement/internal/dto"
	"anoa.com/campusplacement/internal/model"
	"anoa.com/campusplacement/internal/repository"
	"anoa.com/campusplacement/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const applyAction = "apply"

type ApplicationService interface {
	// Create submits an application. The status is always pending regardless
	// of caller input, and the (student, job) uniqueness is backed by the
	// database index, not just the pre-check.
	Create(ctx context.Context, studentID uuid.UUID, input dto.CreateApplicationRequest) (*model.Application, error)
	GetByStudent(ctx context.Context, studentID uuid.UUID) ([]*model.Application, error)
	GetByJob(ctx context.Context, facultyID, jobID uuid.UUID) ([]*model.Application, error)
	GetAll(ctx context.Context) ([]*model.Application, error)
	// UpdateStatus moves the application to accepted or rejected. The
	// rejection reason is kept only while the status is rejected; any other
	// status clears it.
	UpdateStatus(ctx context.Context, facultyID, id uuid.UUID, input dto.UpdateApplicationStatusRequest) (*model.Application, error)
}

type applicationService struct {
	apps          repository.ApplicationRepository
	jobs          repository.JobRepository
	resumes       repository.ResumeRepository
	notifications NotificationService
	limiter       RateLimiter
}

func NewApplicationService(
	apps repository.ApplicationRepository,
	jobs repository.JobRepository,
	resumes repository.ResumeRepository,
	notifications NotificationService,
	limiter RateLimiter,
) ApplicationService {
	return &applicationService{
		apps:          apps,
		jobs:          jobs,
		resumes:       resumes,
		notifications: notifications,
		limiter:       limiter,
	}
}

func (s *applicationService) Create(ctx context.Context, studentID uuid.UUID, input dto.CreateApplicationRequest) (*model.Application, error) {
	job, err := s.jobs.FindByID(ctx, input.JobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.ErrNotFound, "job not found")
		}
		return nil, err
	}

	if !job.IsActive || job.Expired(time.Now()) {
		return nil, apperror.New(apperror.ErrInvalidInput, "this job is no longer accepting applications")
	}

	if input.ResumeID != nil {
		resume, err := s.resumes.FindByID(ctx, *input.ResumeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.New(apperror.ErrNotFound, "resume not found")
			}
			return nil, err
		}
		if resume.StudentID != studentID {
			return nil, apperror.New(apperror.ErrForbidden, "you can only attach your own resume")
		}
	}

	// Friendly pre-check; the unique index catches the race.
	exists, err := s.apps.Exists(ctx, studentID, input.JobID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.New(apperror.ErrConflict, "you have already applied to this job")
	}

	// The cooldown is armed only once the attempt passes validation, so a
	// rejected attempt does not lock the student out of a valid one.
	if s.limiter != nil {
		allowed, err := s.limiter.Acquire(ctx, studentID, applyAction)
		if err != nil {
			log.Printf("rate limit check failed, allowing request: %v", err)
		} else if !allowed {
			ttl, _ := s.limiter.Remaining(ctx, studentID, applyAction)
			return nil, apperror.New(apperror.ErrRateLimitExceeded,
				fmt.Sprintf("please wait %ds before applying again", int(ttl.Seconds())+1))
		}
	}

	application := &model.Application{
		StudentID:   studentID,
		JobID:       input.JobID,
		ResumeID:    input.ResumeID,
		CoverLetter: input.CoverLetter,
		Motivation:  input.Motivation,
		Status:      model.ApplicationStatusPending,
	}

	if err := s.apps.Create(ctx, application); err != nil {
		return nil, err
	}

	s.notify(ctx, &model.Notification{
		UserID:  job.PostedBy,
		Title:   "New application",
		Message: fmt.Sprintf("A student applied to %s at %s", job.Title, job.Company),
		Type:    model.NotificationTypeApplicationReceived,
	})

	return application, nil
}

func (s *applicationService) GetByStudent(ctx context.Context, studentID uuid.UUID) ([]*model.Application, error) {
	return s.apps.FindByStudent(ctx, studentID)
}

func (s *applicationService) GetByJob(ctx context.Context, facultyID, jobID uuid.UUID) ([]*model.Application, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if job.PostedBy != facultyID {
		return nil, apperror.New(apperror.ErrForbidden, "you can only view applications for jobs you posted")
	}

	return s.apps.FindByJob(ctx, jobID)
}

func (s *applicationService) GetAll(ctx context.Context) ([]*model.Application, error) {
	return s.apps.FindAll(ctx)
}

func (s *applicationService) UpdateStatus(ctx context.Context, facultyID, id uuid.UUID, input dto.UpdateApplicationStatusRequest) (*model.Application, error) {
	application, err := s.apps.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if application.Job == nil || application.Job.PostedBy != facultyID {
		return nil, apperror.New(apperror.ErrForbidden, "you can only review applications for jobs you posted")
	}

	reason := input.RejectionReason
	if input.Status != model.ApplicationStatusRejected {
		reason = nil
	}

	if err := s.apps.UpdateStatus(ctx, id, input.Status, reason); err != nil {
		return nil, err
	}

	application.Status = input.Status
	application.RejectionReason = reason

	message := fmt.Sprintf("Your application for %s at %s was %s", application.Job.Title, application.Job.Company, input.Status)
	if reason != nil {
		message = fmt.Sprintf("%s: %s", message, *reason)
	}
	s.notify(ctx, &model.Notification{
		UserID:  application.StudentID,
		Title:   "Application update",
		Message: message,
		Type:    model.NotificationTypeApplicationStatus,
	})

	return application, nil
}

// notify is best effort: a failed notification must not fail the request.
func (s *applicationService) notify(ctx context.Context, notification *model.Notification) {
	if s.notifications == nil {
		return
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		log.Printf("failed to create notification for user %s: %v", notification.UserID, err)
	}
}
