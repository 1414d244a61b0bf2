package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lms/internal/errors"
	"lms/internal/service"
)

// EnrollmentHandler handles enrollment endpoints.
type EnrollmentHandler struct {
	enrollmentService service.EnrollmentService
}

// NewEnrollmentHandler creates a new enrollment handler.
func NewEnrollmentHandler(enrollmentService service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentService: enrollmentService}
}

// EnrollRequest represents an enrollment request.
type EnrollRequest struct {
	CourseID uint `json:"course_id" validate:"required"`
}

// Enroll godoc
// @Summary Enroll the current user in a course
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EnrollRequest true "Course to enroll in"
// @Success 201 {object} model.Enrollment
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /enrollments [post]
func (h *EnrollmentHandler) Enroll(c echo.Context) error {
	current, err := requireUser(c)
	if err != nil {
		return err
	}

	var req EnrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	enrollment, err := h.enrollmentService.Enroll(c.Request().Context(), current, req.CourseID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, enrollment)
}

// MyEnrollments godoc
// @Summary List the current user's enrollments
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Enrollment
// @Failure 401 {object} errors.ErrorResponse
// @Router /enrollments/my-enrollments [get]
func (h *EnrollmentHandler) MyEnrollments(c echo.Context) error {
	current, err := requireUser(c)
	if err != nil {
		return err
	}

	enrollments, err := h.enrollmentService.MyEnrollments(c.Request().Context(), current)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, enrollments)
}

// MarkCompleted godoc
// @Summary Mark an enrollment as completed
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /enrollments/{id}/complete [put]
func (h *EnrollmentHandler) MarkCompleted(c echo.Context) error {
	current, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.enrollmentService.MarkCompleted(c.Request().Context(), current, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "course marked as completed"})
}

// Withdraw godoc
// @Summary Withdraw from a course
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /enrollments/{id} [delete]
func (h *EnrollmentHandler) Withdraw(c echo.Context) error {
	current, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.enrollmentService.Withdraw(c.Request().Context(), current, id); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "enrollment deleted successfully"})
}
