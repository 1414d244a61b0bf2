package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"lms/internal/auth"
	"lms/internal/errors"
	"lms/internal/model"
	"lms/internal/repository"
)

// maxFailedLogins is the number of consecutive failed attempts after which
// an account is locked. The lock is never cleared by the login path itself;
// an admin must reactivate the account.
const maxFailedLogins = 5

// AuthService handles registration and the login state machine.
type AuthService interface {
	Register(ctx context.Context, username, email, password string, role model.Role) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	now        func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		now:        time.Now,
	}
}

// NewAuthServiceWithClock creates an authentication service using the given
// time source, for tests.
func NewAuthServiceWithClock(userRepo repository.UserRepository, jwtService *auth.JWTService, now func() time.Time) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		now:        now,
	}
}

// Register creates a new user with a hashed password. Email and username
// must each be unused.
func (s *authService) Register(ctx context.Context, username, email, password string, role model.Role) (*model.User, error) {
	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, errors.ErrEmailTaken
	} else if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	if existing, err := s.userRepo.FindByUsername(ctx, username); err == nil && existing != nil {
		return nil, errors.ErrUsernameTaken
	} else if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if !role.Valid() {
		role = model.RoleUser
	}

	user := &model.User{
		Username:       username,
		Email:          email,
		HashedPassword: hashed,
		IsActive:       true,
		Role:           role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues a bearer token.
//
// Failure ordering matters: a locked or inactive account short-circuits
// before the password is checked, so neither state touches the failure
// counter. A wrong password increments the counter and locks the account
// once it reaches the threshold; a correct password resets the counter and
// records the login time.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			// indistinguishable from a wrong password
			return "", nil, errors.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if user.AccountLocked {
		log.Printf("login rejected: account locked for %s", user.Username)
		return "", nil, errors.ErrAccountLocked
	}

	if !user.IsActive {
		log.Printf("login rejected: inactive account %s", user.Username)
		return "", nil, errors.ErrAccountInactive
	}

	if !auth.CheckPassword(user.HashedPassword, password) {
		user.FailedLoginAttempts++
		if user.FailedLoginAttempts >= maxFailedLogins {
			user.AccountLocked = true
			log.Printf("account %s locked after %d failed attempts", user.Username, user.FailedLoginAttempts)
		} else {
			log.Printf("failed login for %s: attempt %d of %d", user.Username, user.FailedLoginAttempts, maxFailedLogins)
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return "", nil, fmt.Errorf("persist failed attempt: %w", err)
		}
		return "", nil, errors.ErrInvalidCredentials
	}

	now := s.now()
	user.FailedLoginAttempts = 0
	user.LastLogin = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", nil, fmt.Errorf("persist login: %w", err)
	}

	token, err := s.jwtService.Generate(user)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}
