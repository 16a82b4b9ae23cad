package service

import (
	"context"
	"errors"

	"anoa.com/campusplacement/internal/dto"
	"anoa.com/campusplacement/internal/model"
	"anoa.com/campusplacement/internal/repository"
	"anoa.com/campusplacement/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService interface {
	// UpdateProfile applies a partial update. Identity (id, email), password
	// and the creation timestamp are never touched here.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileRequest) (*model.User, error)
	GetStudentsByDepartment(ctx context.Context, department string) ([]*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileRequest) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Department != nil {
		user.Department = *input.Department
	}
	if input.RollNumber != nil {
		user.RollNumber = input.RollNumber
	}
	if input.CGPA != nil {
		user.CGPA = input.CGPA
	}
	if input.Skills != nil {
		user.Skills = input.Skills
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userService) GetStudentsByDepartment(ctx context.Context, department string) ([]*model.User, error) {
	return s.repo.FindStudentsByDepartment(ctx, department)
}
