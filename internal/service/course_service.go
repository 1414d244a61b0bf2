package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"lms/internal/auth"
	"lms/internal/cache"
	"lms/internal/errors"
	"lms/internal/model"
	"lms/internal/repository"
)

const catalogCacheKey = "courses:published:front"
const catalogCacheTTL = 5 * time.Minute

// CourseInput carries the fields required to create a course.
type CourseInput struct {
	Title         string
	Description   string
	DurationWeeks int
	Level         model.CourseLevel
	Category      string
	Status        model.CourseStatus
}

// CourseUpdate carries the optional fields of a partial course update.
type CourseUpdate struct {
	Title         *string
	Description   *string
	DurationWeeks *int
	Level         *model.CourseLevel
	Category      *string
	Status        *model.CourseStatus
}

// CoursePage is one page of a course listing.
type CoursePage struct {
	Total   int64          `json:"total"`
	Skip    int            `json:"skip"`
	Limit   int            `json:"limit"`
	Courses []model.Course `json:"courses"`
}

// CourseService exposes course catalog operations.
type CourseService interface {
	CreateCourse(ctx context.Context, instructor *model.User, input CourseInput) (*model.Course, error)
	GetCourse(ctx context.Context, id uint) (*model.Course, error)
	ListCourses(ctx context.Context, skip, limit int) (*CoursePage, error)
	ListPublished(ctx context.Context, skip, limit int) (*CoursePage, error)
	UpdateCourse(ctx context.Context, current *model.User, id uint, update CourseUpdate) (*model.Course, error)
	DeleteCourse(ctx context.Context, current *model.User, id uint) error
	TogglePublish(ctx context.Context, current *model.User, id uint) (*model.Course, error)
}

type courseService struct {
	courseRepo repository.CourseRepository
	cache      *cache.Client
}

// NewCourseService builds a CourseService with repository and cache.
func NewCourseService(courseRepo repository.CourseRepository, cache *cache.Client) CourseService {
	return &courseService{courseRepo: courseRepo, cache: cache}
}

func (s *courseService) CreateCourse(ctx context.Context, instructor *model.User, input CourseInput) (*model.Course, error) {
	status := input.Status
	if status == "" {
		status = model.StatusDraft
	}
	course := &model.Course{
		Title:         input.Title,
		Description:   input.Description,
		InstructorID:  instructor.ID,
		DurationWeeks: input.DurationWeeks,
		Level:         input.Level,
		Category:      input.Category,
		Status:        status,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	_ = s.cache.Delete(ctx, catalogCacheKey)
	return course, nil
}

func (s *courseService) GetCourse(ctx context.Context, id uint) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *courseService) ListCourses(ctx context.Context, skip, limit int) (*CoursePage, error) {
	total, err := s.courseRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.courseRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return &CoursePage{Total: total, Skip: skip, Limit: limit, Courses: courses}, nil
}

// ListPublished serves the public catalog. The front page is cached; deeper
// pages always hit the database.
func (s *courseService) ListPublished(ctx context.Context, skip, limit int) (*CoursePage, error) {
	frontPage := skip == 0 && limit == 20

	if frontPage {
		if data, _ := s.cache.Get(ctx, catalogCacheKey); data != nil {
			var cached CoursePage
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	total, err := s.courseRepo.CountByStatus(ctx, model.StatusPublished)
	if err != nil {
		return nil, err
	}
	courses, err := s.courseRepo.ListByStatus(ctx, model.StatusPublished, skip, limit)
	if err != nil {
		return nil, err
	}

	page := &CoursePage{Total: total, Skip: skip, Limit: limit, Courses: courses}
	if frontPage {
		if payload, err := json.Marshal(page); err == nil {
			_ = s.cache.Set(ctx, catalogCacheKey, payload, catalogCacheTTL)
		}
	}
	return page, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, current *model.User, id uint, update CourseUpdate) (*model.Course, error) {
	course, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(current, course.InstructorID) {
		return nil, errors.ErrNotAuthorized
	}

	if update.Title != nil {
		course.Title = *update.Title
	}
	if update.Description != nil {
		course.Description = *update.Description
	}
	if update.DurationWeeks != nil {
		course.DurationWeeks = *update.DurationWeeks
	}
	if update.Level != nil {
		course.Level = *update.Level
	}
	if update.Category != nil {
		course.Category = *update.Category
	}
	if update.Status != nil {
		course.Status = *update.Status
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}
	_ = s.cache.Delete(ctx, catalogCacheKey)
	return course, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, current *model.User, id uint) error {
	course, err := s.GetCourse(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanModify(current, course.InstructorID) {
		return errors.ErrNotAuthorized
	}
	if err := s.courseRepo.Delete(ctx, course); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	_ = s.cache.Delete(ctx, catalogCacheKey)
	return nil
}

// TogglePublish flips a course between DRAFT and PUBLISHED. Archived
// courses also return to PUBLISHED on toggle.
func (s *courseService) TogglePublish(ctx context.Context, current *model.User, id uint) (*model.Course, error) {
	course, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(current, course.InstructorID) {
		return nil, errors.ErrNotAuthorized
	}

	if course.Status == model.StatusPublished {
		course.Status = model.StatusDraft
	} else {
		course.Status = model.StatusPublished
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("update course status: %w", err)
	}
	_ = s.cache.Delete(ctx, catalogCacheKey)
	log.Printf("course %q (id %d) set to %s by %s", course.Title, id, course.Status, current.Username)
	return course, nil
}
