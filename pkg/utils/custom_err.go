package utils

import "errors"

var (
	ErrDatabaseError        = errors.New("database error")
	ErrAccountNotFound      = errors.New("account not found")
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrUnsupportedProvider  = errors.New("unsupported login provider")

	ErrSessionNotFound     = errors.New("onboarding session not found")
	ErrSessionEnded        = errors.New("onboarding session already finished")
	ErrPreferencesNotFound = errors.New("preferences not found")

	ErrUnknownField   = errors.New("unknown preference field")
	ErrUnknownOption  = errors.New("unknown option")
	ErrNotSetField    = errors.New("field does not support toggling")
	ErrNotScalarField = errors.New("field does not support single selection")
	ErrInvalidValue   = errors.New("invalid value")
)
