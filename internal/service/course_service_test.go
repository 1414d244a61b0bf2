package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"lms/internal/errors"
	"lms/internal/model"
)

// MockCourseRepository is a mock implementation of CourseRepository.
type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) Create(ctx context.Context, course *model.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) Update(ctx context.Context, course *model.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) Delete(ctx context.Context, course *model.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *MockCourseRepository) FindByID(ctx context.Context, id uint) (*model.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Course), args.Error(1)
}

func (m *MockCourseRepository) List(ctx context.Context, skip, limit int) ([]model.Course, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Course), args.Error(1)
}

func (m *MockCourseRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCourseRepository) ListByStatus(ctx context.Context, status model.CourseStatus, skip, limit int) ([]model.Course, error) {
	args := m.Called(ctx, status, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Course), args.Error(1)
}

func (m *MockCourseRepository) CountByStatus(ctx context.Context, status model.CourseStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func TestCourseService_CreateCourse_DefaultsToDraft(t *testing.T) {
	mockRepo := new(MockCourseRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Course")).Return(nil)

	svc := NewCourseService(mockRepo, nil)
	instructor := &model.User{ID: 7, Username: "teach"}

	course, err := svc.CreateCourse(context.Background(), instructor, CourseInput{
		Title:         "Intro to Go",
		DurationWeeks: 6,
		Level:         model.LevelBeginner,
		Category:      "programming",
	})
	assert.NoError(t, err)
	assert.Equal(t, uint(7), course.InstructorID)
	assert.Equal(t, model.StatusDraft, course.Status)

	mockRepo.AssertExpectations(t)
}

func TestCourseService_TogglePublish(t *testing.T) {
	owner := &model.User{ID: 7, Username: "teach", Role: model.RoleUser}
	stranger := &model.User{ID: 8, Username: "other", Role: model.RoleUser}
	admin := &model.User{ID: 1, Username: "admin", Role: model.RoleAdmin}

	tests := []struct {
		name          string
		current       *model.User
		initialStatus model.CourseStatus
		wantStatus    model.CourseStatus
		expectedError error
	}{
		{name: "owner publishes draft", current: owner, initialStatus: model.StatusDraft, wantStatus: model.StatusPublished},
		{name: "owner unpublishes", current: owner, initialStatus: model.StatusPublished, wantStatus: model.StatusDraft},
		{name: "admin may toggle any course", current: admin, initialStatus: model.StatusDraft, wantStatus: model.StatusPublished},
		{name: "non-owner rejected", current: stranger, initialStatus: model.StatusDraft, expectedError: errors.ErrNotAuthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCourseRepository)
			course := &model.Course{ID: 10, Title: "Intro to Go", InstructorID: 7, Status: tt.initialStatus}
			mockRepo.On("FindByID", mock.Anything, uint(10)).Return(course, nil)
			if tt.expectedError == nil {
				mockRepo.On("Update", mock.Anything, course).Return(nil)
			}

			svc := NewCourseService(mockRepo, nil)
			updated, err := svc.TogglePublish(context.Background(), tt.current, 10)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantStatus, updated.Status)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCourseService_UpdateCourse_PartialFields(t *testing.T) {
	mockRepo := new(MockCourseRepository)
	course := &model.Course{
		ID:            10,
		Title:         "Intro to Go",
		Description:   "old",
		InstructorID:  7,
		DurationWeeks: 6,
		Level:         model.LevelBeginner,
		Category:      "programming",
	}
	mockRepo.On("FindByID", mock.Anything, uint(10)).Return(course, nil)
	mockRepo.On("Update", mock.Anything, course).Return(nil)

	svc := NewCourseService(mockRepo, nil)
	owner := &model.User{ID: 7, Role: model.RoleUser}

	level := model.LevelAdvanced
	updated, err := svc.UpdateCourse(context.Background(), owner, 10, CourseUpdate{
		Description: strPtr("new description"),
		Level:       &level,
	})
	assert.NoError(t, err)
	assert.Equal(t, "new description", updated.Description)
	assert.Equal(t, model.LevelAdvanced, updated.Level)
	// untouched fields keep their values
	assert.Equal(t, "Intro to Go", updated.Title)
	assert.Equal(t, 6, updated.DurationWeeks)

	mockRepo.AssertExpectations(t)
}

func TestCourseService_DeleteCourse_Authorization(t *testing.T) {
	mockRepo := new(MockCourseRepository)
	course := &model.Course{ID: 10, InstructorID: 7}
	mockRepo.On("FindByID", mock.Anything, uint(10)).Return(course, nil)

	svc := NewCourseService(mockRepo, nil)
	stranger := &model.User{ID: 8, Role: model.RoleUser}

	err := svc.DeleteCourse(context.Background(), stranger, 10)
	assert.ErrorIs(t, err, errors.ErrNotAuthorized)

	mockRepo.AssertExpectations(t)
}

func TestCourseService_GetCourse_NotFound(t *testing.T) {
	mockRepo := new(MockCourseRepository)
	mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewCourseService(mockRepo, nil)
	_, err := svc.GetCourse(context.Background(), 99)
	assert.ErrorIs(t, err, errors.ErrCourseNotFound)

	mockRepo.AssertExpectations(t)
}
