package repository

import (
	"context"

	"gorm.io/gorm"

	"lms/internal/model"
)

// CourseRepository defines course persistence operations.
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, course *model.Course) error
	FindByID(ctx context.Context, id uint) (*model.Course, error)
	List(ctx context.Context, skip, limit int) ([]model.Course, error)
	Count(ctx context.Context) (int64, error)
	ListByStatus(ctx context.Context, status model.CourseStatus, skip, limit int) ([]model.Course, error)
	CountByStatus(ctx context.Context, status model.CourseStatus) (int64, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository builds a GORM-backed repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) Update(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

// Delete removes the course; dependent text contents cascade at the
// database level.
func (r *courseRepository) Delete(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Delete(course).Error
}

func (r *courseRepository) FindByID(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	if err := r.db.WithContext(ctx).First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) List(ctx context.Context, skip, limit int) ([]model.Course, error) {
	var courses []model.Course
	if err := r.db.WithContext(ctx).Offset(skip).Limit(limit).Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Course{}).Count(&count).Error
	return count, err
}

func (r *courseRepository) ListByStatus(ctx context.Context, status model.CourseStatus, skip, limit int) ([]model.Course, error) {
	var courses []model.Course
	if err := r.db.WithContext(ctx).Where("status = ?", status).
		Offset(skip).Limit(limit).Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) CountByStatus(ctx context.Context, status model.CourseStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Course{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
