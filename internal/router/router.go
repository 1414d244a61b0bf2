package router

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"lms/docs"
	"lms/internal/auth"
	"lms/internal/config"
	"lms/internal/handler"
	"lms/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	userService service.UserService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	courseHandler *handler.CourseHandler,
	enrollmentHandler *handler.EnrollmentHandler,
	textContentHandler *handler.TextContentHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	if cfg.SwaggerHost != "" {
		host := strings.TrimPrefix(cfg.SwaggerHost, "https://")
		host = strings.TrimPrefix(host, "http://")
		docs.SwaggerInfo.Host = host
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/statistics", authHandler.Statistics)
	api.GET("/courses", courseHandler.ListCourses)
	api.GET("/courses/published", courseHandler.ListPublished)
	api.GET("/courses/:id", courseHandler.GetCourse)
	api.GET("/text-contents", textContentHandler.List)
	api.POST("/text-contents", textContentHandler.Save)
	api.GET("/seed/demo", seedHandler.SeedDemo)

	// Secured routes (require a valid bearer token and a live account)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.Verify(token)
		},
	}), resolveAccount(userService))

	secured.GET("/auth/users/me", authHandler.Me)
	secured.GET("/auth/users", userHandler.ListUsers)
	secured.PUT("/auth/users/:id", userHandler.UpdateUser)
	secured.DELETE("/auth/users/:id", userHandler.DeleteUser)

	secured.POST("/courses", courseHandler.CreateCourse)
	secured.PUT("/courses/:id", courseHandler.UpdateCourse)
	secured.DELETE("/courses/:id", courseHandler.DeleteCourse)
	secured.PUT("/courses/:id/publish", courseHandler.TogglePublish)

	secured.POST("/enrollments", enrollmentHandler.Enroll)
	secured.GET("/enrollments/my-enrollments", enrollmentHandler.MyEnrollments)
	secured.PUT("/enrollments/:id/complete", enrollmentHandler.MarkCompleted)
	secured.DELETE("/enrollments/:id", enrollmentHandler.Withdraw)
}

// resolveAccount loads the account named by the verified token's subject and
// gates on its current state. A token issued before an account was locked or
// deactivated stops working here, even though its signature is still valid.
func resolveAccount(userService service.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			user, err := userService.GetByUsername(c.Request().Context(), claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if user.AccountLocked || !user.IsActive {
				return echo.NewHTTPError(http.StatusUnauthorized, "account is not available")
			}

			c.Set(handler.CurrentUserKey, user)
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
