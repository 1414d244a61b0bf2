package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// Unknown email and wrong password both map here so responses never
	// reveal whether an account exists.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrAccountLocked is returned when the account has been locked after
	// repeated failed logins.
	ErrAccountLocked = errors.New("account is locked, please contact support")
	// ErrAccountInactive is returned when the account has been deactivated.
	ErrAccountInactive = errors.New("account is inactive")
	// ErrEmailTaken is returned when registering or updating to an email
	// that is already in use.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUsernameTaken is returned when the username is already in use.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrUserNotFound is returned when a user lookup by ID fails.
	ErrUserNotFound = errors.New("user not found")
	// ErrCourseNotFound is returned when a course lookup fails.
	ErrCourseNotFound = errors.New("course not found")
	// ErrEnrollmentNotFound is returned when an enrollment lookup fails.
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	// ErrAlreadyEnrolled is returned when enrolling twice in the same course.
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")
	// ErrNotAuthorized is returned when the current user may not perform
	// the requested operation.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrSelfDelete is returned when a user tries to delete their own account.
	ErrSelfDelete = errors.New("users cannot delete their own account")
	// ErrTokenExpired is returned when a bearer token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned when a bearer token is malformed or its
	// signature does not verify.
	ErrTokenInvalid = errors.New("invalid token")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrAccountLocked):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "ACCOUNT_LOCKED")
	case errors.Is(err, ErrAccountInactive):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "ACCOUNT_INACTIVE")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrCourseNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "COURSE_NOT_FOUND")
	case errors.Is(err, ErrEnrollmentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ENROLLMENT_NOT_FOUND")
	case errors.Is(err, ErrAlreadyEnrolled):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ALREADY_ENROLLED")
	case errors.Is(err, ErrNotAuthorized):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrSelfDelete):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "SELF_DELETE")
	case errors.Is(err, ErrTokenExpired), errors.Is(err, ErrTokenInvalid):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
