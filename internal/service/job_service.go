package service

import (
	"context"
	"errors"
	"log"
	"time"

	"anoa.com/campusplacement/internal/dto"
	"anoa.com/campusplacement/internal/model"
	"anoa.com/campusplacement/internal/repository"
	"anoa.com/campusplacement/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobService interface {
	CreateJob(ctx context.Context, facultyID uuid.UUID, input dto.CreateJobRequest) (*model.Job, error)
	// GetJobs lists jobs matching the filter, newest first. When userID is
	// supplied each result is annotated with saved/applied flags for that
	// user, via set membership over the user's bookmark and application sets.
	GetJobs(ctx context.Context, filter dto.JobFilter, userID *uuid.UUID) ([]dto.JobView, error)
	GetJob(ctx context.Context, id, userID uuid.UUID, role string) (*dto.JobDetail, error)
	UpdateJob(ctx context.Context, facultyID, jobID uuid.UUID, input dto.UpdateJobRequest) (*model.Job, error)
	DeleteJob(ctx context.Context, facultyID, jobID uuid.UUID) error
}

type jobService struct {
	jobs   repository.JobRepository
	saved  repository.SavedJobRepository
	apps   repository.ApplicationRepository
	search JobSearch
}

func NewJobService(jobs repository.JobRepository, saved repository.SavedJobRepository, apps repository.ApplicationRepository, search JobSearch) JobService {
	return &jobService{
		jobs:   jobs,
		saved:  saved,
		apps:   apps,
		search: search,
	}
}

func (s *jobService) CreateJob(ctx context.Context, facultyID uuid.UUID, input dto.CreateJobRequest) (*model.Job, error) {
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	job := &model.Job{
		Title:        input.Title,
		Company:      input.Company,
		Location:     input.Location,
		Type:         input.Type,
		Description:  input.Description,
		Requirements: input.Requirements,
		Skills:       input.Skills,
		Eligibility:  input.Eligibility,
		Deadline:     input.Deadline,
		IsActive:     isActive,
		PostedBy:     facultyID,
	}

	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	s.indexJob(job)

	return job, nil
}

func (s *jobService) GetJobs(ctx context.Context, filter dto.JobFilter, userID *uuid.UUID) ([]dto.JobView, error) {
	jobs, err := s.findJobs(ctx, filter)
	if err != nil {
		return nil, err
	}

	savedSet := map[uuid.UUID]struct{}{}
	appliedSet := map[uuid.UUID]struct{}{}

	if userID != nil {
		savedIDs, err := s.saved.FindJobIDsByStudent(ctx, *userID)
		if err != nil {
			return nil, err
		}
		for _, id := range savedIDs {
			savedSet[id] = struct{}{}
		}

		appliedIDs, err := s.apps.FindJobIDsByStudent(ctx, *userID)
		if err != nil {
			return nil, err
		}
		for _, id := range appliedIDs {
			appliedSet[id] = struct{}{}
		}
	}

	now := time.Now()
	views := make([]dto.JobView, 0, len(jobs))
	for _, job := range jobs {
		_, saved := savedSet[job.ID]
		_, applied := appliedSet[job.ID]
		views = append(views, dto.JobView{
			Job:           job,
			Expired:       job.Expired(now),
			SavedByUser:   saved,
			AppliedByUser: applied,
		})
	}

	return views, nil
}

// findJobs prefers the search index for text queries and falls back to the
// repository's ILIKE filter whenever the index is absent or failing. The
// response shape is identical on both paths.
func (s *jobService) findJobs(ctx context.Context, filter dto.JobFilter) ([]*model.Job, error) {
	if filter.Search == "" || s.search == nil || !s.search.IsAvailable() {
		return s.jobs.FindAll(ctx, filter.Location, filter.Type, filter.Search)
	}

	ids, err := s.search.Search(ctx, filter.Search)
	if err != nil {
		log.Printf("job search failed, falling back to database filter: %v", err)
		return s.jobs.FindAll(ctx, filter.Location, filter.Type, filter.Search)
	}

	jobs, err := s.jobs.FindByIDs(ctx, ids, filter.Location, filter.Type)
	if err != nil {
		return nil, err
	}

	// Reorder to match index relevance.
	jobMap := make(map[uuid.UUID]*model.Job, len(jobs))
	for _, job := range jobs {
		jobMap[job.ID] = job
	}

	ordered := make([]*model.Job, 0, len(ids))
	for _, id := range ids {
		if job, ok := jobMap[id]; ok {
			ordered = append(ordered, job)
		}
	}

	return ordered, nil
}

func (s *jobService) GetJob(ctx context.Context, id, userID uuid.UUID, role string) (*dto.JobDetail, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	detail := &dto.JobDetail{
		JobView: dto.JobView{
			Job:     job,
			Expired: job.Expired(time.Now()),
		},
	}

	switch role {
	case model.RoleStudent:
		saved, err := s.saved.Exists(ctx, userID, job.ID)
		if err != nil {
			return nil, err
		}
		applied, err := s.apps.Exists(ctx, userID, job.ID)
		if err != nil {
			return nil, err
		}
		detail.SavedByUser = saved
		detail.AppliedByUser = applied
	case model.RoleFaculty:
		if job.PostedBy == userID {
			count, err := s.apps.CountByJob(ctx, job.ID)
			if err != nil {
				return nil, err
			}
			detail.ApplicantCount = &count
		}
	}

	return detail, nil
}

func (s *jobService) UpdateJob(ctx context.Context, facultyID, jobID uuid.UUID, input dto.UpdateJobRequest) (*model.Job, error) {
	job, err := s.ownedJob(ctx, facultyID, jobID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		job.Title = *input.Title
	}
	if input.Company != nil {
		job.Company = *input.Company
	}
	if input.Location != nil {
		job.Location = *input.Location
	}
	if input.Type != nil {
		job.Type = *input.Type
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Requirements != nil {
		job.Requirements = input.Requirements
	}
	if input.Skills != nil {
		job.Skills = input.Skills
	}
	if input.Eligibility != nil {
		job.Eligibility = *input.Eligibility
	}
	if input.Deadline != nil {
		job.Deadline = *input.Deadline
	}
	if input.IsActive != nil {
		job.IsActive = *input.IsActive
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}

	s.indexJob(job)

	return job, nil
}

func (s *jobService) DeleteJob(ctx context.Context, facultyID, jobID uuid.UUID) error {
	job, err := s.ownedJob(ctx, facultyID, jobID)
	if err != nil {
		return err
	}

	if err := s.jobs.Delete(ctx, job.ID); err != nil {
		return err
	}

	if s.search != nil {
		if err := s.search.RemoveJob(job.ID.String()); err != nil {
			log.Printf("failed to remove job %s from search index: %v", job.ID, err)
		}
	}

	return nil
}

// ownedJob loads the job and enforces ownership at the service boundary, so
// handlers never duplicate the check.
func (s *jobService) ownedJob(ctx context.Context, facultyID, jobID uuid.UUID) (*model.Job, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if job.PostedBy != facultyID {
		return nil, apperror.New(apperror.ErrForbidden, "you can only modify jobs you posted")
	}

	return job, nil
}

// indexJob is best effort: a down search engine must never fail the request.
func (s *jobService) indexJob(job *model.Job) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexJob(job); err != nil {
		log.Printf("failed to index job %s: %v", job.ID, err)
	}
}
