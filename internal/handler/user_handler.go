package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lms/internal/auth"
	"lms/internal/errors"
	"lms/internal/model"
	"lms/internal/service"
)

// UserHandler handles user administration endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserListResponse is a paginated user listing.
type UserListResponse struct {
	Total int64        `json:"total"`
	Skip  int          `json:"skip"`
	Limit int          `json:"limit"`
	Users []model.User `json:"users"`
}

// UpdateUserRequest carries the optional fields of a partial user update.
// Absent fields are left untouched.
type UpdateUserRequest struct {
	Username *string     `json:"username" validate:"omitempty,min=3,max=50"`
	Email    *string     `json:"email" validate:"omitempty,email"`
	Password *string     `json:"password" validate:"omitempty,min=6"`
	IsActive *bool       `json:"is_active"`
	Role     *model.Role `json:"role"`
}

// DeleteUserResponse confirms a deletion.
type DeleteUserResponse struct {
	Message string `json:"message"`
	UserID  uint   `json:"user_id"`
}

// ListUsers godoc
// @Summary List all users (admin only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Number of records to skip"
// @Param limit query int false "Number of records to return"
// @Success 200 {object} UserListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /auth/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	current, err := requireUser(c)
	if err != nil {
		return err
	}
	if !auth.IsAdmin(current) {
		return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
			Error: "only admin users can access this endpoint",
			Code:  "FORBIDDEN",
		})
	}

	skip, limit := parsePagination(c, 10)
	users, total, err := h.userService.ListUsers(c.Request().Context(), skip, limit)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, UserListResponse{
		Total: total,
		Skip:  skip,
		Limit: limit,
		Users: users,
	})
}

// UpdateUser godoc
// @Summary Update a user (admin or self)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	current, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.userService.UpdateUser(c.Request().Context(), current, id, service.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		IsActive: req.IsActive,
		Role:     req.Role,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteUser godoc
// @Summary Delete a user (admin only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} DeleteUserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	current, err := requireUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	deleted, err := h.userService.DeleteUser(c.Request().Context(), current, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, DeleteUserResponse{
		Message: "user " + deleted.Username + " successfully deleted",
		UserID:  id,
	})
}
