package repository

import (
	"context"

	"anoa.com/campusplacement/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Job, error)
	// FindAll applies the optional conjunctive filters: location (substring,
	// case-insensitive), jobType (exact), search (substring OR across title,
	// company and description). Results are ordered newest-first.
	FindAll(ctx context.Context, location, jobType, search string) ([]*model.Job, error)
	// FindByIDs loads jobs matching ids with the location/type filters applied.
	// Result order is unspecified; callers reorder as needed.
	FindByIDs(ctx context.Context, ids []uuid.UUID, location, jobType string) ([]*model.Job, error)
	Update(ctx context.Context, job *model.Job) error
	// Delete removes the job together with its applications and bookmarks in
	// one transaction; the applications FK would otherwise block the delete.
	Delete(ctx context.Context, id uuid.UUID) error
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	var job model.Job
	if err := r.db.WithContext(ctx).
		Preload("Poster").
		Where("id = ?", id).
		First(&job).Error; err != nil {
		return nil, err
	}

	return &job, nil
}

func (r *jobRepository) FindAll(ctx context.Context, location, jobType, search string) ([]*model.Job, error) {
	var jobs []*model.Job

	query := r.db.WithContext(ctx).Preload("Poster")

	if location != "" {
		query = query.Where("location ILIKE ?", "%"+location+"%")
	}

	if jobType != "" {
		query = query.Where("type = ?", jobType)
	}

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title ILIKE ? OR company ILIKE ? OR description ILIKE ?", pattern, pattern, pattern)
	}

	if err := query.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}

	return jobs, nil
}

func (r *jobRepository) FindByIDs(ctx context.Context, ids []uuid.UUID, location, jobType string) ([]*model.Job, error) {
	if len(ids) == 0 {
		return []*model.Job{}, nil
	}

	query := r.db.WithContext(ctx).Preload("Poster").Where("id IN ?", ids)

	if location != "" {
		query = query.Where("location ILIKE ?", "%"+location+"%")
	}

	if jobType != "" {
		query = query.Where("type = ?", jobType)
	}

	var jobs []*model.Job
	if err := query.Find(&jobs).Error; err != nil {
		return nil, err
	}

	return jobs, nil
}

func (r *jobRepository) Update(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *jobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&model.SavedJob{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", id).Delete(&model.Application{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Job{}, "id = ?", id).Error
	})
}
