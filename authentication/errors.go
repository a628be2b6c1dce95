package authentication

import "errors"

// Authentication failures. The boundary reports these as a generic denial
// so callers cannot probe which check failed.
var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInactiveAccount    = errors.New("user account is inactive")
)

// ErrPermissionDenied means the identity is valid but the role lacks the
// required capability.
var ErrPermissionDenied = errors.New("not enough permissions")

// ValidationError carries the specific violated rule back to the caller.
type ValidationError struct {
	Rule string
}

func (e *ValidationError) Error() string {
	return e.Rule
}

func NewValidationError(rule string) error {
	return &ValidationError{Rule: rule}
}

// IsValidationError reports whether err is a validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
