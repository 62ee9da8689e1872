package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user is inactive")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")

	// Исходы проверки второго фактора; различаются кодами ответа.
	ErrChallengeNotFound = errors.New("two-factor token not found")
	ErrChallengeExpired  = errors.New("two-factor code expired")
	ErrCodeMismatch      = errors.New("invalid two-factor code")
)
