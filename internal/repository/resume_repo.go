package repository

import (
	"context"

	"anoa.com/campusplacement/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResumeRepository interface {
	Create(ctx context.Context, resume *model.Resume) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Resume, error)
	FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*model.Resume, error)
	CountByStudent(ctx context.Context, studentID uuid.UUID) (int64, error)
	// Delete removes the resume and clears resume_id on any application that
	// referenced it, in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error
	// SetDefault flips is_default for all of the student's resumes in a single
	// statement, so exactly the target ends up default even under concurrent
	// calls for different resume ids.
	SetDefault(ctx context.Context, studentID, id uuid.UUID) error
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

func (r *resumeRepository) Create(ctx context.Context, resume *model.Resume) error {
	return r.db.WithContext(ctx).Create(resume).Error
}

func (r *resumeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Resume, error) {
	var resume model.Resume
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&resume).Error; err != nil {
		return nil, err
	}

	return &resume, nil
}

func (r *resumeRepository) FindByStudent(ctx context.Context, studentID uuid.UUID) ([]*model.Resume, error) {
	var resumes []*model.Resume
	if err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("uploaded_at DESC").
		Find(&resumes).Error; err != nil {
		return nil, err
	}

	return resumes, nil
}

func (r *resumeRepository) CountByStudent(ctx context.Context, studentID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Resume{}).
		Where("student_id = ?", studentID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *resumeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Application{}).
			Where("resume_id = ?", id).
			Update("resume_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Resume{}, "id = ?", id).Error
	})
}

func (r *resumeRepository) SetDefault(ctx context.Context, studentID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Resume{}).
		Where("student_id = ?", studentID).
		Update("is_default", gorm.Expr("id = ?", id)).Error
}
