package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")
)

// Intake errors
var (
	ErrRateLimited = errors.New("application rate limit exceeded")
)

// Auth errors
var (
	ErrInvalidCode          = errors.New("invalid one-time code")
	ErrTOTPNotConfigured    = errors.New("totp secret not configured")
	ErrSetupAlreadyComplete = errors.New("totp secret already configured")
)

// Review errors
var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrInvalidStatus       = errors.New("invalid application status")
	ErrEmptyEmailContent   = errors.New("email subject and body are required")
	ErrEmailDisabled       = errors.New("email delivery is not configured")
)
