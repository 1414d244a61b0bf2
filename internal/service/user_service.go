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

const statsCacheKey = "users:statistics"
const statsCacheTTL = 5 * time.Minute

// UserUpdate carries the optional fields of a partial user update. Only
// non-nil fields are applied.
type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
	IsActive *bool
	Role     *model.Role
}

// UserStatistics summarizes the user base.
type UserStatistics struct {
	TotalUsers        int64 `json:"total_users"`
	ActiveUsers       int64 `json:"active_users"`
	NewUsersThisMonth int64 `json:"new_users_this_month"`
}

// UserService exposes user administration operations.
type UserService interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context, skip, limit int) (users []model.User, total int64, err error)
	Statistics(ctx context.Context) (*UserStatistics, error)
	UpdateUser(ctx context.Context, current *model.User, id uint, update UserUpdate) (*model.User, error)
	DeleteUser(ctx context.Context, current *model.User, id uint) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	cache    *cache.Client
	now      func() time.Time
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(userRepo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{userRepo: userRepo, cache: cache, now: time.Now}
}

func (s *userService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, skip, limit int) ([]model.User, int64, error) {
	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	users, err := s.userRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (s *userService) Statistics(ctx context.Context) (*UserStatistics, error) {
	if data, _ := s.cache.Get(ctx, statsCacheKey); data != nil {
		var cached UserStatistics
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.userRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	newThisMonth, err := s.userRepo.CountCreatedSince(ctx, firstOfMonth)
	if err != nil {
		return nil, err
	}

	stats := &UserStatistics{
		TotalUsers:        total,
		ActiveUsers:       active,
		NewUsersThisMonth: newThisMonth,
	}
	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, statsCacheKey, payload, statsCacheTTL)
	}
	return stats, nil
}

// UpdateUser applies a partial update. Admins may update anyone including
// role and active flag; other users may only update their own profile
// fields. Email and username uniqueness is re-checked against other rows.
func (s *userService) UpdateUser(ctx context.Context, current *model.User, id uint, update UserUpdate) (*model.User, error) {
	target, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !auth.CanModify(current, target.ID) {
		return nil, errors.ErrNotAuthorized
	}
	if update.Role != nil && !auth.IsAdmin(current) {
		return nil, errors.ErrNotAuthorized
	}

	if update.Email != nil {
		existing, err := s.userRepo.FindByEmail(ctx, *update.Email)
		if err == nil && existing != nil && existing.ID != id {
			return nil, errors.ErrEmailTaken
		} else if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check email: %w", err)
		}
		target.Email = *update.Email
	}

	if update.Username != nil {
		existing, err := s.userRepo.FindByUsername(ctx, *update.Username)
		if err == nil && existing != nil && existing.ID != id {
			return nil, errors.ErrUsernameTaken
		} else if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check username: %w", err)
		}
		target.Username = *update.Username
	}

	if update.Password != nil {
		hashed, err := auth.HashPassword(*update.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		target.HashedPassword = hashed
	}

	if update.IsActive != nil && auth.IsAdmin(current) {
		target.IsActive = *update.IsActive
	}

	if update.Role != nil && auth.IsAdmin(current) {
		if !update.Role.Valid() {
			return nil, errors.ErrNotAuthorized
		}
		target.Role = *update.Role
	}

	if err := s.userRepo.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, statsCacheKey)

	return target, nil
}

// DeleteUser removes an account. Admin only; self-deletion is rejected.
func (s *userService) DeleteUser(ctx context.Context, current *model.User, id uint) (*model.User, error) {
	target, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.ID == id {
		return nil, errors.ErrSelfDelete
	}
	if !auth.IsAdmin(current) {
		return nil, errors.ErrNotAuthorized
	}

	if err := s.userRepo.Delete(ctx, target); err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}
	_ = s.cache.Delete(ctx, statsCacheKey)
	log.Printf("user %s (id %d) deleted by admin %s", target.Username, id, current.Username)

	return target, nil
}
