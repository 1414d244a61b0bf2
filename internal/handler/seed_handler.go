package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"lms/internal/errors"
	"lms/internal/model"
	"lms/internal/service"
)

// SeedHandler exposes an idempotent demo data endpoint for local setups.
type SeedHandler struct {
	authService   service.AuthService
	userService   service.UserService
	courseService service.CourseService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(authService service.AuthService, userService service.UserService, courseService service.CourseService) *SeedHandler {
	return &SeedHandler{
		authService:   authService,
		userService:   userService,
		courseService: courseService,
	}
}

// SeedResponse reports what the seed created.
type SeedResponse struct {
	Message        string `json:"message"`
	UsersCreated   int    `json:"users_created"`
	CoursesCreated int    `json:"courses_created"`
}

// SeedDemo godoc
// @Summary Seed a demo admin, instructor, and course catalog
// @Tags seed
// @Produce json
// @Success 200 {object} SeedResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /seed/demo [get]
func (h *SeedHandler) SeedDemo(c echo.Context) error {
	ctx := c.Request().Context()
	usersCreated := 0
	coursesCreated := 0

	_, err := h.authService.Register(ctx, "admin", "admin@lms.local", "admin12345", model.RoleAdmin)
	switch {
	case err == nil:
		usersCreated++
	case stderrors.Is(err, errors.ErrEmailTaken), stderrors.Is(err, errors.ErrUsernameTaken):
		// already seeded
	default:
		return seedError(err)
	}

	instructor, err := h.authService.Register(ctx, "instructor", "instructor@lms.local", "teach12345", model.RoleUser)
	switch {
	case err == nil:
		usersCreated++
	case stderrors.Is(err, errors.ErrEmailTaken), stderrors.Is(err, errors.ErrUsernameTaken):
		instructor, err = h.userService.GetByUsername(ctx, "instructor")
		if err != nil {
			return seedError(err)
		}
	default:
		return seedError(err)
	}

	// only seed the catalog once
	page, err := h.courseService.ListCourses(ctx, 0, 1)
	if err != nil {
		return seedError(err)
	}
	if page.Total == 0 {
		demo := []service.CourseInput{
			{Title: "Introduction to Programming", Description: "Variables, control flow, and first programs.", DurationWeeks: 8, Level: model.LevelBeginner, Category: "programming", Status: model.StatusPublished},
			{Title: "Relational Databases", Description: "Schema design, SQL, and transactions.", DurationWeeks: 6, Level: model.LevelIntermediate, Category: "databases", Status: model.StatusPublished},
			{Title: "Distributed Systems", Description: "Consistency, replication, and failure modes.", DurationWeeks: 12, Level: model.LevelAdvanced, Category: "systems", Status: model.StatusDraft},
		}
		for _, input := range demo {
			if _, err := h.courseService.CreateCourse(ctx, instructor, input); err != nil {
				return seedError(err)
			}
			coursesCreated++
		}
	}

	return c.JSON(http.StatusOK, SeedResponse{
		Message:        "demo data ready",
		UsersCreated:   usersCreated,
		CoursesCreated: coursesCreated,
	})
}

func seedError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
