package service

import (
	"context"
	"errors"
	"io"
	"log"
	"path/filepath"
	"strings"

	"anoa.com/campusplacement/internal/model"
	"anoa.com/campusplacement/internal/repository"
	"anoa.com/campusplacement/pkg/apperror"
	"anoa.com/campusplacement/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxResumeSize caps uploads at 5MB.
const MaxResumeSize = 5 << 20

// ResumeFile represents an uploaded resume document.
type ResumeFile struct {
	Reader   io.Reader
	FileName string
	Size     int64
}

type ResumeService interface {
	Upload(ctx context.Context, studentID uuid.UUID, file ResumeFile) (*model.Resume, error)
	List(ctx context.Context, studentID uuid.UUID) ([]*model.Resume, error)
	// Delete removes the resume; applications that referenced it keep
	// existing with resume_id set to NULL.
	Delete(ctx context.Context, studentID, id uuid.UUID) error
	SetDefault(ctx context.Context, studentID, id uuid.UUID) error
}

type resumeService struct {
	repo    repository.ResumeRepository
	storage storage.DocumentStorage
}

func NewResumeService(repo repository.ResumeRepository, documentStorage storage.DocumentStorage) ResumeService {
	return &resumeService{
		repo:    repo,
		storage: documentStorage,
	}
}

func (s *resumeService) Upload(ctx context.Context, studentID uuid.UUID, file ResumeFile) (*model.Resume, error) {
	ext := strings.ToLower(filepath.Ext(file.FileName))
	switch ext {
	case ".pdf", ".doc", ".docx":
	default:
		return nil, apperror.New(apperror.ErrInvalidInput, "only PDF, DOC and DOCX files are accepted")
	}

	if file.Size > MaxResumeSize {
		return nil, apperror.New(apperror.ErrInvalidInput, "resume must be 5MB or smaller")
	}

	url, err := s.storage.UploadDocument(ctx, file.Reader, "resumes", file.FileName)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	resume := &model.Resume{
		StudentID: studentID,
		FileName:  file.FileName,
		FilePath:  url,
		// The first upload becomes the default automatically.
		IsDefault: count == 0,
	}

	if err := s.repo.Create(ctx, resume); err != nil {
		return nil, err
	}

	return resume, nil
}

func (s *resumeService) List(ctx context.Context, studentID uuid.UUID) ([]*model.Resume, error) {
	return s.repo.FindByStudent(ctx, studentID)
}

func (s *resumeService) Delete(ctx context.Context, studentID, id uuid.UUID) error {
	resume, err := s.ownedResume(ctx, studentID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, resume.ID); err != nil {
		return err
	}

	// Best effort; the row is already gone.
	if err := s.storage.DeleteDocument(ctx, resume.FilePath); err != nil {
		log.Printf("failed to delete resume file %s: %v", resume.FilePath, err)
	}

	return nil
}

func (s *resumeService) SetDefault(ctx context.Context, studentID, id uuid.UUID) error {
	resume, err := s.ownedResume(ctx, studentID, id)
	if err != nil {
		return err
	}

	return s.repo.SetDefault(ctx, studentID, resume.ID)
}

func (s *resumeService) ownedResume(ctx context.Context, studentID, id uuid.UUID) (*model.Resume, error) {
	resume, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if resume.StudentID != studentID {
		return nil, apperror.New(apperror.ErrForbidden, "you can only manage your own resumes")
	}

	return resume, nil
}
