package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lms/internal/errors"
	"lms/internal/model"
	"lms/internal/service"
)

// CourseHandler handles course catalog endpoints.
type CourseHandler struct {
	courseService service.CourseService
}

// NewCourseHandler creates a new course handler.
func NewCourseHandler(courseService service.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

// CreateCourseRequest represents a course creation request.
type CreateCourseRequest struct {
	Title         string             `json:"title" validate:"required,max=100"`
	Description   string             `json:"description"`
	DurationWeeks int                `json:"duration_weeks" validate:"required,min=1"`
	Level         model.CourseLevel  `json:"level" validate:"required,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Category      string             `json:"category" validate:"required,max=50"`
	Status        model.CourseStatus `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
}

// UpdateCourseRequest carries the optional fields of a partial course update.
type UpdateCourseRequest struct {
	Title         *string             `json:"title" validate:"omitempty,max=100"`
	Description   *string             `json:"description"`
	DurationWeeks *int                `json:"duration_weeks" validate:"omitempty,min=1"`
	Level         *model.CourseLevel  `json:"level" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED"`
	Category      *string             `json:"category" validate:"omitempty,max=50"`
	Status        *model.CourseStatus `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
}

// CreateCourse godoc
// @Summary Create a course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCourseRequest true "Course data"
// @Success 201 {object} model.Course
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c echo.Context) error {
	current, err := requireUser(c)
	if err != nil {
		return err
	}

	var req CreateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.courseService.CreateCourse(c.Request().Context(), current, service.CourseInput{
		Title:         req.Title,
		Description:   req.Description,
		DurationWeeks: req.DurationWeeks,
		Level:         req.Level,
		Category:      req.Category,
		Status:        req.Status,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, course)
}

// ListCourses godoc
// @Summary List all courses
// @Tags courses
// @Produce json
// @Param skip query int false "Number of records to skip"
// @Param limit query int false "Number of records to return"
// @Success 200 {object} service.CoursePage
// @Failure 500 {object} errors.ErrorResponse
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c echo.Context) error {
	skip, limit := parsePagination(c, 20)
	page, err := h.courseService.ListCourses(c.Request().Context(), skip, limit)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, page)
}

// ListPublished godoc
// @Summary List published courses
// @Tags courses
// @Produce json
// @Param skip query int false "Number of records to skip"
// @Param limit query int false "Number of records to return"
// @Success 200 {object} service.CoursePage
// @Failure 500 {object} errors.ErrorResponse
// @Router /courses/published [get]
func (h *CourseHandler) ListPublished(c echo.Context) error {
	skip, limit := parsePagination(c, 20)
	page, err := h.courseService.ListPublished(c.Request().Context(), skip, limit)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, page)
}

// GetCourse godoc
// @Summary Get a course by id
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} model.Course
// @Failure 404 {object} errors.ErrorResponse
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	course, err := h.courseService.GetCourse(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, course)
}

// UpdateCourse godoc
// @Summary Update a course (owner or admin)
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body UpdateCourseRequest true "Fields to update"
// @Success 200 {object} model.Course
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /courses/{id} [put]
func (h *CourseHandler) UpdateCourse(c echo.Context) error {
	current, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.courseService.UpdateCourse(c.Request().Context(), current, id, service.CourseUpdate{
		Title:         req.Title,
		Description:   req.Description,
		DurationWeeks: req.DurationWeeks,
		Level:         req.Level,
		Category:      req.Category,
		Status:        req.Status,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, course)
}

// DeleteCourse godoc
// @Summary Delete a course (owner or admin)
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /courses/{id} [delete]
func (h *CourseHandler) DeleteCourse(c echo.Context) error {
	current, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.courseService.DeleteCourse(c.Request().Context(), current, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "course deleted successfully"})
}

// TogglePublish godoc
// @Summary Toggle a course between draft and published (owner or admin)
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} model.Course
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /courses/{id}/publish [put]
func (h *CourseHandler) TogglePublish(c echo.Context) error {
	current, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	course, err := h.courseService.TogglePublish(c.Request().Context(), current, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, course)
}
