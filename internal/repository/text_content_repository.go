package repository

import (
	"context"

	"gorm.io/gorm"

	"lms/internal/model"
)

// TextContentRepository defines text content persistence operations.
type TextContentRepository interface {
	Create(ctx context.Context, content *model.TextContent) error
	Update(ctx context.Context, content *model.TextContent) error
	FindByCourseID(ctx context.Context, courseID uint) (*model.TextContent, error)
	List(ctx context.Context, skip, limit int) ([]model.TextContent, error)
	Count(ctx context.Context) (int64, error)
}

type textContentRepository struct {
	db *gorm.DB
}

// NewTextContentRepository builds a GORM-backed repository.
func NewTextContentRepository(db *gorm.DB) TextContentRepository {
	return &textContentRepository{db: db}
}

func (r *textContentRepository) Create(ctx context.Context, content *model.TextContent) error {
	return r.db.WithContext(ctx).Create(content).Error
}

func (r *textContentRepository) Update(ctx context.Context, content *model.TextContent) error {
	return r.db.WithContext(ctx).Save(content).Error
}

func (r *textContentRepository) FindByCourseID(ctx context.Context, courseID uint) (*model.TextContent, error) {
	var content model.TextContent
	if err := r.db.WithContext(ctx).Where("course_id = ?", courseID).First(&content).Error; err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *textContentRepository) List(ctx context.Context, skip, limit int) ([]model.TextContent, error) {
	var contents []model.TextContent
	if err := r.db.WithContext(ctx).Offset(skip).Limit(limit).Find(&contents).Error; err != nil {
		return nil, err
	}
	return contents, nil
}

func (r *textContentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TextContent{}).Count(&count).Error
	return count, err
}
