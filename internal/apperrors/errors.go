package apperrors

import "errors"

// Error kinds returned by the service layer. Handlers translate them to HTTP
// statuses with errors.Is; services wrap causes with %w where one exists.
var (
	// ErrAuthentication covers every refresh/access token failure: missing,
	// malformed, mis-signed, expired, unknown, already used or revoked.
	ErrAuthentication = errors.New("not authenticated")

	// ErrCredential is a password mismatch at sign-in or a sensitive action.
	ErrCredential = errors.New("wrong credentials provided")

	// ErrAuthorization is a role check failure.
	ErrAuthorization = errors.New("not authorized")

	// ErrServer wraps unexpected persistence or internal failures. The cause
	// is kept for diagnostics; callers only see the generic message.
	ErrServer = errors.New("internal server error")

	// ErrValidation is a request that fails a service-level business rule.
	ErrValidation = errors.New("invalid request")

	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("account is deactivated")
	ErrCourseExists       = errors.New("course already exists")
	ErrCourseNotFound     = errors.New("course not found")
	ErrCourseFull         = errors.New("course is full or inactive")
	ErrEnrollmentExists   = errors.New("user already enrolled")
	ErrEnrollmentNotFound = errors.New("user not enrolled")
)
