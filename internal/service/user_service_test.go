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

func strPtr(s string) *string          { return &s }
func boolPtr(b bool) *bool             { return &b }
func rolePtr(r model.Role) *model.Role { return &r }

func TestUserService_UpdateUser(t *testing.T) {
	admin := &model.User{ID: 1, Username: "admin", Role: model.RoleAdmin}
	selfUser := &model.User{ID: 2, Username: "bob", Role: model.RoleUser}

	tests := []struct {
		name          string
		current       *model.User
		targetID      uint
		update        UserUpdate
		setupMock     func(*MockUserRepository)
		expectedError error
		check         func(*testing.T, *model.User)
	}{
		{
			name:     "self profile update",
			current:  selfUser,
			targetID: 2,
			update:   UserUpdate{Username: strPtr("bobby")},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(2)).Return(&model.User{ID: 2, Username: "bob", Role: model.RoleUser}, nil)
				m.On("FindByUsername", mock.Anything, "bobby").Return(nil, gorm.ErrRecordNotFound)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			check: func(t *testing.T, u *model.User) {
				assert.Equal(t, "bobby", u.Username)
			},
		},
		{
			name:     "non-admin cannot update another user",
			current:  selfUser,
			targetID: 3,
			update:   UserUpdate{Username: strPtr("x")},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(3)).Return(&model.User{ID: 3}, nil)
			},
			expectedError: errors.ErrNotAuthorized,
		},
		{
			name:     "non-admin cannot change own role",
			current:  selfUser,
			targetID: 2,
			update:   UserUpdate{Role: rolePtr(model.RoleAdmin)},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(2)).Return(&model.User{ID: 2, Role: model.RoleUser}, nil)
			},
			expectedError: errors.ErrNotAuthorized,
		},
		{
			name:     "admin promotes and deactivates",
			current:  admin,
			targetID: 2,
			update:   UserUpdate{Role: rolePtr(model.RoleAdmin), IsActive: boolPtr(false)},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(2)).Return(&model.User{ID: 2, Role: model.RoleUser, IsActive: true}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			check: func(t *testing.T, u *model.User) {
				assert.Equal(t, model.RoleAdmin, u.Role)
				assert.False(t, u.IsActive)
			},
		},
		{
			name:     "email already in use by another user",
			current:  admin,
			targetID: 2,
			update:   UserUpdate{Email: strPtr("taken@example.com")},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(2)).Return(&model.User{ID: 2}, nil)
				m.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{ID: 9, Email: "taken@example.com"}, nil)
			},
			expectedError: errors.ErrEmailTaken,
		},
		{
			name:     "unknown user",
			current:  admin,
			targetID: 42,
			update:   UserUpdate{},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo, nil)
			updated, err := svc.UpdateUser(context.Background(), tt.current, tt.targetID, tt.update)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, updated)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, updated)
				if tt.check != nil {
					tt.check(t, updated)
				}
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_UpdateUser_PasswordRehashed(t *testing.T) {
	mockRepo := new(MockUserRepository)
	target := &model.User{ID: 2, Username: "bob", HashedPassword: "old-hash"}
	mockRepo.On("FindByID", mock.Anything, uint(2)).Return(target, nil)
	mockRepo.On("Update", mock.Anything, target).Return(nil)

	svc := NewUserService(mockRepo, nil)
	current := &model.User{ID: 2, Role: model.RoleUser}

	updated, err := svc.UpdateUser(context.Background(), current, 2, UserUpdate{Password: strPtr("newsecret")})
	assert.NoError(t, err)
	assert.NotEqual(t, "old-hash", updated.HashedPassword)
	assert.NotEqual(t, "newsecret", updated.HashedPassword)

	mockRepo.AssertExpectations(t)
}

func TestUserService_DeleteUser(t *testing.T) {
	admin := &model.User{ID: 1, Username: "admin", Role: model.RoleAdmin}
	user := &model.User{ID: 2, Username: "bob", Role: model.RoleUser}

	tests := []struct {
		name          string
		current       *model.User
		targetID      uint
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "admin deletes user",
			current:  admin,
			targetID: 2,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(2)).Return(&model.User{ID: 2, Username: "bob"}, nil)
				m.On("Delete", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:     "self delete rejected",
			current:  admin,
			targetID: 1,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Username: "admin"}, nil)
			},
			expectedError: errors.ErrSelfDelete,
		},
		{
			name:     "non-admin rejected",
			current:  user,
			targetID: 3,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, uint(3)).Return(&model.User{ID: 3}, nil)
			},
			expectedError: errors.ErrNotAuthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewUserService(mockRepo, nil)
			_, err := svc.DeleteUser(context.Background(), tt.current, tt.targetID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
