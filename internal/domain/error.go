package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrStickerNotFound    = errors.New("invalid or inactive sticker")
	ErrAlreadyClaimed     = errors.New("sticker already claimed")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrSessionExpired     = errors.New("session expired or invalid")
	ErrSignatureRequired  = errors.New("signature required")
	ErrSignatureMismatch  = errors.New("signature mismatch")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRateLimited        = errors.New("too many claim attempts")

	// Infrastructure-boundary errors
	ErrOperationFailed    = errors.New("operation failed")
	ErrInvalidExecContext = errors.New("invalid execution context")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
)
