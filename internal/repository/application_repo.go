package repository

import (
	"context"
	"errors"

	"anoa.com/campusplacement/internal/model"
	"anoa.com/campusplacement/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	// Create inserts the application. The unique (student_id, job_id) index
	// is the real duplicate guard; a constraint violation comes back as
	// apperror.ErrConflict.
	Create(ctx context.Context, application *model.Application) error
	Exists(ctx context.Context, studentID, jobID uuid.UUID) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Application, error)
	FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*model.Application, error)
	FindByJob(ctx context.Context, jobID uuid.UUID) ([]*model.Application, error)
	FindAll(ctx context.Context) ([]*model.Application, error)
	FindJobIDsByStudent(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, rejectionReason *string) error
	CountByJob(ctx context.Context, jobID uuid.UUID) (int64, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, application *model.Application) error {
	if err := r.db.WithContext(ctx).Create(application).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.New(apperror.ErrConflict, "you have already applied to this job")
		}
		return err
	}
	return nil
}

func (r *applicationRepository) Exists(ctx context.Context, studentID, jobID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("student_id = ? AND job_id = ?", studentID, jobID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *applicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	var application model.Application
	if err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("Student").
		Preload("Resume").
		Where("id = ?", id).
		First(&application).Error; err != nil {
		return nil, err
	}

	return &application, nil
}

func (r *applicationRepository) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*model.Application, error) {
	var applications []*model.Application
	if err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("Resume").
		Where("student_id = ?", studentID).
		Order("applied_at DESC").
		Find(&applications).Error; err != nil {
		return nil, err
	}

	return applications, nil
}

func (r *applicationRepository) FindByJob(ctx context.Context, jobID uuid.UUID) ([]*model.Application, error) {
	var applications []*model.Application
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Resume").
		Where("job_id = ?", jobID).
		Order("applied_at DESC").
		Find(&applications).Error; err != nil {
		return nil, err
	}

	return applications, nil
}

func (r *applicationRepository) FindAll(ctx context.Context) ([]*model.Application, error) {
	var applications []*model.Application
	if err := r.db.WithContext(ctx).
		Preload("Job").
		Preload("Student").
		Preload("Resume").
		Order("applied_at DESC").
		Find(&applications).Error; err != nil {
		return nil, err
	}

	return applications, nil
}

func (r *applicationRepository) FindJobIDsByStudent(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("student_id = ?", studentID).
		Pluck("job_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, rejectionReason *string) error {
	result := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":           status,
			"rejection_reason": rejectionReason,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *applicationRepository) CountByJob(ctx context.Context, jobID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("job_id = ?", jobID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
