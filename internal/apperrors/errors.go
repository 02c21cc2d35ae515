package apperrors

import (
	"errors"
	"fmt"
)

// Base kinds. Handlers map these to HTTP status codes; everything else is a
// 500. Specific errors below wrap a base kind so errors.Is keeps working
// through fmt.Errorf chains.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
)

var (
	ErrUserExists         = fmt.Errorf("%w: user already exists with this email or username", ErrConflict)
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid user credentials", ErrUnauthorized)
	ErrInvalidToken       = fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
	ErrSessionSuperseded  = fmt.Errorf("%w: refresh token mismatch, session superseded", ErrUnauthorized)
	ErrRecordNotFound     = fmt.Errorf("%w: record not found", ErrNotFound)
)
