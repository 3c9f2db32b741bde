package service

import "errors"

// Sentinel error kinds; handlers map these onto HTTP statuses.
var (
	// ErrInvalidCredentials is returned for both unknown identifiers and
	// wrong passwords so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrForbidden          = errors.New("forbidden")
	// ErrInvalidResetToken covers unknown, already-used and expired tokens.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)
