package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"lms/internal/errors"
	"lms/internal/model"
	"lms/internal/repository"
)

// EnrollmentService exposes a student's enrollment operations. Every
// operation is scoped to the current user; there is no cross-user access.
type EnrollmentService interface {
	Enroll(ctx context.Context, current *model.User, courseID uint) (*model.Enrollment, error)
	MyEnrollments(ctx context.Context, current *model.User) ([]model.Enrollment, error)
	MarkCompleted(ctx context.Context, current *model.User, enrollmentID uint) error
	Withdraw(ctx context.Context, current *model.User, enrollmentID uint) error
}

type enrollmentService struct {
	enrollmentRepo repository.EnrollmentRepository
	courseRepo     repository.CourseRepository
}

// NewEnrollmentService builds an EnrollmentService.
func NewEnrollmentService(enrollmentRepo repository.EnrollmentRepository, courseRepo repository.CourseRepository) EnrollmentService {
	return &enrollmentService{enrollmentRepo: enrollmentRepo, courseRepo: courseRepo}
}

func (s *enrollmentService) Enroll(ctx context.Context, current *model.User, courseID uint) (*model.Enrollment, error) {
	if _, err := s.courseRepo.FindByID(ctx, courseID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrCourseNotFound
		}
		return nil, err
	}

	existing, err := s.enrollmentRepo.FindByUserAndCourse(ctx, current.ID, courseID)
	if err == nil && existing != nil {
		return nil, errors.ErrAlreadyEnrolled
	} else if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check enrollment: %w", err)
	}

	enrollment := &model.Enrollment{
		UserID:   current.ID,
		CourseID: courseID,
		Status:   model.EnrollmentActive,
	}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("create enrollment: %w", err)
	}
	return enrollment, nil
}

func (s *enrollmentService) MyEnrollments(ctx context.Context, current *model.User) ([]model.Enrollment, error) {
	return s.enrollmentRepo.ListByUser(ctx, current.ID)
}

func (s *enrollmentService) MarkCompleted(ctx context.Context, current *model.User, enrollmentID uint) error {
	enrollment, err := s.enrollmentRepo.FindByIDAndUser(ctx, enrollmentID, current.ID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrEnrollmentNotFound
		}
		return err
	}

	enrollment.Completed = true
	enrollment.Status = model.EnrollmentCompleted
	enrollment.Progress = 100
	if err := s.enrollmentRepo.Update(ctx, enrollment); err != nil {
		return fmt.Errorf("update enrollment: %w", err)
	}
	return nil
}

func (s *enrollmentService) Withdraw(ctx context.Context, current *model.User, enrollmentID uint) error {
	enrollment, err := s.enrollmentRepo.FindByIDAndUser(ctx, enrollmentID, current.ID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrEnrollmentNotFound
		}
		return err
	}
	if err := s.enrollmentRepo.Delete(ctx, enrollment); err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	return nil
}
