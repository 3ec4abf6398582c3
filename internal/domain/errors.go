package domain

import "errors"

// Sentinel errors shared by services, repositories and controllers.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateSlug      = errors.New("an event with this slug already exists")
	ErrInvalidEventID     = errors.New("invalid event id")
	ErrEventNotFound      = errors.New("referenced event does not exist")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError reports a single rejected field. Message is meant to be shown to the
// caller unchanged. errors.Is(err, ErrValidation) holds for every ValidationError.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
