package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"lms/internal/auth"
	"lms/internal/errors"
	"lms/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, skip, limit int) ([]model.User, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	assert.NoError(t, err)
	return hashed
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		email         string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "alice",
			email:    "alice@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "email already registered",
			username: "alice",
			email:    "taken@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{Email: "taken@example.com"}, nil)
			},
			expectedError: errors.ErrEmailTaken,
		},
		{
			name:     "username already taken",
			username: "taken",
			email:    "alice@example.com",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByUsername", mock.Anything, "taken").Return(&model.User{Username: "taken"}, nil)
			},
			expectedError: errors.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"))
			user, err := svc.Register(context.Background(), tt.username, tt.email, "password123", model.RoleUser)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.True(t, user.IsActive)
				assert.False(t, user.AccountLocked)
				assert.Zero(t, user.FailedLoginAttempts)
				assert.NotEmpty(t, user.HashedPassword)
				assert.NotEqual(t, "password123", user.HashedPassword)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	loginTime := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

	mockRepo := new(MockUserRepository)
	user := &model.User{
		ID:                  1,
		Username:            "alice",
		Email:               "alice@example.com",
		HashedPassword:      hashFor(t, "correctpass"),
		IsActive:            true,
		Role:                model.RoleUser,
		FailedLoginAttempts: 3,
	}
	mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	mockRepo.On("Update", mock.Anything, user).Return(nil)

	svc := NewAuthServiceWithClock(mockRepo, auth.NewJWTService("test-secret"),
		func() time.Time { return loginTime })

	token, loggedIn, err := svc.Login(context.Background(), "alice@example.com", "correctpass")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotNil(t, loggedIn)

	// success resets the counter and records the login time
	assert.Zero(t, loggedIn.FailedLoginAttempts)
	assert.NotNil(t, loggedIn.LastLogin)
	assert.Equal(t, loginTime, *loggedIn.LastLogin)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_Failures(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(t *testing.T, m *MockUserRepository)
		expectedError error
	}{
		{
			name:     "unknown email collapses to invalid credentials",
			email:    "ghost@example.com",
			password: "whatever",
			setupMock: func(t *testing.T, m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrInvalidCredentials,
		},
		{
			name:     "locked account rejected before password check",
			email:    "locked@example.com",
			password: "correctpass",
			setupMock: func(t *testing.T, m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "locked@example.com").Return(&model.User{
					Username:       "locked",
					Email:          "locked@example.com",
					HashedPassword: hashFor(t, "correctpass"),
					IsActive:       true,
					AccountLocked:  true,
				}, nil)
				// no Update expectation: a locked account must not be touched
			},
			expectedError: errors.ErrAccountLocked,
		},
		{
			name:     "inactive account rejected",
			email:    "inactive@example.com",
			password: "correctpass",
			setupMock: func(t *testing.T, m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "inactive@example.com").Return(&model.User{
					Username:       "inactive",
					Email:          "inactive@example.com",
					HashedPassword: hashFor(t, "correctpass"),
					IsActive:       false,
				}, nil)
			},
			expectedError: errors.ErrAccountInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(t, mockRepo)

			svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"))
			token, user, err := svc.Login(context.Background(), tt.email, tt.password)

			assert.ErrorIs(t, err, tt.expectedError)
			assert.Empty(t, token)
			assert.Nil(t, user)

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_WrongPasswordIncrementsCounter(t *testing.T) {
	mockRepo := new(MockUserRepository)
	user := &model.User{
		Username:            "bob",
		Email:               "bob@example.com",
		HashedPassword:      hashFor(t, "correctpass"),
		IsActive:            true,
		FailedLoginAttempts: 2,
	}
	mockRepo.On("FindByEmail", mock.Anything, "bob@example.com").Return(user, nil)
	mockRepo.On("Update", mock.Anything, user).Return(nil)

	svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"))
	_, _, err := svc.Login(context.Background(), "bob@example.com", "wrongpass")

	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
	assert.Equal(t, 3, user.FailedLoginAttempts)
	assert.False(t, user.AccountLocked)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_FifthFailureLocks(t *testing.T) {
	mockRepo := new(MockUserRepository)
	user := &model.User{
		Username:            "alice",
		Email:               "alice@example.com",
		HashedPassword:      hashFor(t, "correctpass"),
		IsActive:            true,
		FailedLoginAttempts: 4,
	}
	mockRepo.On("FindByEmail", mock.Anything, "alice@example.com").Return(user, nil)
	mockRepo.On("Update", mock.Anything, user).Return(nil)

	svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"))

	_, _, err := svc.Login(context.Background(), "alice@example.com", "wrongpass")
	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
	assert.Equal(t, 5, user.FailedLoginAttempts)
	assert.True(t, user.AccountLocked)

	// even the correct password no longer gets in
	_, _, err = svc.Login(context.Background(), "alice@example.com", "correctpass")
	assert.ErrorIs(t, err, errors.ErrAccountLocked)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_LockoutSequence(t *testing.T) {
	mockRepo := new(MockUserRepository)
	user := &model.User{
		Username:       "carol",
		Email:          "carol@example.com",
		HashedPassword: hashFor(t, "correctpass"),
		IsActive:       true,
	}
	mockRepo.On("FindByEmail", mock.Anything, "carol@example.com").Return(user, nil)
	mockRepo.On("Update", mock.Anything, user).Return(nil)

	svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"))

	for i := 1; i <= 5; i++ {
		_, _, err := svc.Login(context.Background(), "carol@example.com", "wrongpass")
		assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
		assert.Equal(t, i, user.FailedLoginAttempts)
		assert.Equal(t, i >= 5, user.AccountLocked)
	}

	// 6th attempt with the correct password hits the lock
	_, _, err := svc.Login(context.Background(), "carol@example.com", "correctpass")
	assert.ErrorIs(t, err, errors.ErrAccountLocked)

	mockRepo.AssertExpectations(t)
}
