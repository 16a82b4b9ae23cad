package repository

import (
	"context"

	"anoa.com/campusplacement/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SavedJobRepository interface {
	// Save inserts the bookmark with ON CONFLICT DO NOTHING, so a repeated
	// save for the same (student, job) pair never creates a second row.
	Save(ctx context.Context, savedJob *model.SavedJob) error
	// Delete reports whether a row was actually removed.
	Delete(ctx context.Context, studentID, jobID uuid.UUID) (bool, error)
	Exists(ctx context.Context, studentID, jobID uuid.UUID) (bool, error)
	FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*model.SavedJob, error)
	FindJobIDsByStudent(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error)
}

type savedJobRepository struct {
	db *gorm.DB
}

func NewSavedJobRepository(db *gorm.DB) SavedJobRepository {
	return &savedJobRepository{db: db}
}

func (r *savedJobRepository) Save(ctx context.Context, savedJob *model.SavedJob) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "job_id"}},
			DoNothing: true,
		}).
		Create(savedJob).Error
}

func (r *savedJobRepository) Delete(ctx context.Context, studentID, jobID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("student_id = ? AND job_id = ?", studentID, jobID).
		Delete(&model.SavedJob{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *savedJobRepository) Exists(ctx context.Context, studentID, jobID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.SavedJob{}).
		Where("student_id = ? AND job_id = ?", studentID, jobID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *savedJobRepository) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*model.SavedJob, error) {
	var savedJobs []*model.SavedJob
	if err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("Job.Poster").
		Where("student_id = ?", studentID).
		Order("saved_at DESC").
		Find(&savedJobs).Error; err != nil {
		return nil, err
	}

	return savedJobs, nil
}

func (r *savedJobRepository) FindJobIDsByStudent(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&model.SavedJob{}).
		Where("student_id = ?", studentID).
		Pluck("job_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
