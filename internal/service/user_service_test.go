package service

import (
	"context"
	"testing"

	"anoa.com/campusplacement/internal/dto"
	"anoa.com/campusplacement/internal/model"
	"github.com/google/uuid"
)

func TestUpdateProfilePartial(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	user := &model.User{
		Email:        "student@campus.edu",
		PasswordHash: "hashed",
		Name:         "Before",
		Role:         model.RoleStudent,
		Department:   "Physics",
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	name := "After"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, dto.UpdateProfileRequest{Name: &name})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Name != "After" {
		t.Fatalf("expected updated name, got %q", updated.Name)
	}
	if updated.Department != "Physics" {
		t.Fatal("expected untouched fields to survive")
	}
	if updated.Email != "student@campus.edu" || updated.PasswordHash != "hashed" {
		t.Fatal("expected identity and password to be untouched")
	}
}

func TestGetStudentsByDepartmentExcludesFaculty(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo)

	student := &model.User{Email: "s@campus.edu", PasswordHash: "x", Name: "Student", Role: model.RoleStudent, Department: "Computer Science"}
	faculty := &model.User{Email: "f@campus.edu", PasswordHash: "x", Name: "Faculty", Role: model.RoleFaculty, Department: "Computer Science"}
	otherDept := &model.User{Email: "o@campus.edu", PasswordHash: "x", Name: "Other", Role: model.RoleStudent, Department: "Physics"}
	for _, u := range []*model.User{student, faculty, otherDept} {
		if err := repo.Create(context.Background(), u); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
	}

	students, err := svc.GetStudentsByDepartment(context.Background(), "Computer Science")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if len(students) != 1 {
		t.Fatalf("expected 1 student, got %d", len(students))
	}
	if students[0].ID != student.ID {
		t.Fatal("expected only the matching student")
	}
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	name := "Ghost"
	if _, err := svc.UpdateProfile(context.Background(), uuid.New(), dto.UpdateProfileRequest{Name: &name}); err == nil {
		t.Fatal("expected error for unknown user")
	}
}
