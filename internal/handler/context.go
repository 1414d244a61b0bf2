package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"lms/internal/model"
)

// CurrentUserKey is the echo context key under which the authentication
// middleware stores the resolved *model.User.
const CurrentUserKey = "current_user"

// CurrentUser returns the authenticated user for the request, or nil on
// unprotected routes.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(CurrentUserKey).(*model.User)
	return user
}

// requireUser returns the authenticated user or a 401. Protected routes go
// through the auth middleware first, so a miss here means a wiring bug.
func requireUser(c echo.Context) (*model.User, error) {
	user := CurrentUser(c)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return user, nil
}

// parsePagination reads skip/limit query parameters with the usual bounds
// (skip >= 0, 1 <= limit <= 100).
func parsePagination(c echo.Context, defaultLimit int) (skip, limit int) {
	skip = 0
	limit = defaultLimit
	if v, err := strconv.Atoi(c.QueryParam("skip")); err == nil && v >= 0 {
		skip = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v >= 1 && v <= 100 {
		limit = v
	}
	return skip, limit
}

// parseID reads a numeric path parameter.
func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}
