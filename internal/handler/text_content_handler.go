package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lms/internal/errors"
	"lms/internal/model"
	"lms/internal/service"
)

// TextContentHandler handles course text content endpoints.
type TextContentHandler struct {
	textContentService service.TextContentService
}

// NewTextContentHandler creates a new text content handler.
func NewTextContentHandler(textContentService service.TextContentService) *TextContentHandler {
	return &TextContentHandler{textContentService: textContentService}
}

// SaveTextContentRequest represents a text content save. Saving for a course
// that already has content replaces it.
type SaveTextContentRequest struct {
	CourseID          uint                    `json:"course_id" validate:"required"`
	RawText           string                  `json:"raw_text" validate:"required"`
	FormattedText     string                  `json:"formatted_text"`
	FormattingOptions model.FormattingOptions `json:"formatting_options"`
	Version           *int                    `json:"version" validate:"omitempty,min=1"`
	Published         *bool                   `json:"published"`
}

// Save godoc
// @Summary Create or replace the text content of a course
// @Tags text-contents
// @Accept json
// @Produce json
// @Param request body SaveTextContentRequest true "Text content"
// @Success 201 {object} model.TextContent
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /text-contents [post]
func (h *TextContentHandler) Save(c echo.Context) error {
	var req SaveTextContentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	content, err := h.textContentService.Save(c.Request().Context(), service.TextContentInput{
		CourseID:          req.CourseID,
		RawText:           req.RawText,
		FormattedText:     req.FormattedText,
		FormattingOptions: req.FormattingOptions,
		Version:           req.Version,
		Published:         req.Published,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, content)
}

// List godoc
// @Summary List text contents
// @Tags text-contents
// @Produce json
// @Param skip query int false "Number of records to skip"
// @Param limit query int false "Number of records to return"
// @Success 200 {object} service.TextContentPage
// @Failure 500 {object} errors.ErrorResponse
// @Router /text-contents [get]
func (h *TextContentHandler) List(c echo.Context) error {
	skip, limit := parsePagination(c, 10)
	page, err := h.textContentService.List(c.Request().Context(), skip, limit)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, page)
}
