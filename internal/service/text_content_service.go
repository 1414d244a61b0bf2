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

// TextContentInput carries a text content save request. Version and
// Published are optional: when omitted the stored values are kept.
type TextContentInput struct {
	CourseID          uint
	RawText           string
	FormattedText     string
	FormattingOptions model.FormattingOptions
	Version           *int
	Published         *bool
}

// TextContentPage is one page of a text content listing.
type TextContentPage struct {
	Total        int64               `json:"total"`
	Skip         int                 `json:"skip"`
	Limit        int                 `json:"limit"`
	TextContents []model.TextContent `json:"text_contents"`
}

// TextContentService exposes versioned course text operations.
type TextContentService interface {
	Save(ctx context.Context, input TextContentInput) (*model.TextContent, error)
	List(ctx context.Context, skip, limit int) (*TextContentPage, error)
}

type textContentService struct {
	contentRepo repository.TextContentRepository
	courseRepo  repository.CourseRepository
}

// NewTextContentService builds a TextContentService.
func NewTextContentService(contentRepo repository.TextContentRepository, courseRepo repository.CourseRepository) TextContentService {
	return &textContentService{contentRepo: contentRepo, courseRepo: courseRepo}
}

// Save upserts the text body of a course. A course holds one text content
// row; saving again overwrites the text and carries the supplied version.
func (s *textContentService) Save(ctx context.Context, input TextContentInput) (*model.TextContent, error) {
	if _, err := s.courseRepo.FindByID(ctx, input.CourseID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrCourseNotFound
		}
		return nil, err
	}

	existing, err := s.contentRepo.FindByCourseID(ctx, input.CourseID)
	if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find text content: %w", err)
	}

	if existing != nil {
		existing.RawText = input.RawText
		existing.FormattedText = input.FormattedText
		existing.FormattingOptions = input.FormattingOptions
		if input.Version != nil {
			existing.Version = *input.Version
		}
		if input.Published != nil && *input.Published {
			existing.Published = true
		}
		if err := s.contentRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("update text content: %w", err)
		}
		return existing, nil
	}

	content := &model.TextContent{
		CourseID:          input.CourseID,
		RawText:           input.RawText,
		FormattedText:     input.FormattedText,
		FormattingOptions: input.FormattingOptions,
		Version:           1,
	}
	if input.Version != nil {
		content.Version = *input.Version
	}
	if input.Published != nil {
		content.Published = *input.Published
	}
	if err := s.contentRepo.Create(ctx, content); err != nil {
		return nil, fmt.Errorf("create text content: %w", err)
	}
	return content, nil
}

func (s *textContentService) List(ctx context.Context, skip, limit int) (*TextContentPage, error) {
	total, err := s.contentRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	contents, err := s.contentRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	return &TextContentPage{Total: total, Skip: skip, Limit: limit, TextContents: contents}, nil
}
