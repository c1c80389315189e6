package adapter

import (
	"context"

	"sticker-hunt-backend/internal/domain/model"
)

// IdentityProvider is the hex port for session-based identity.
//
// The claim handler trusts only a principal resolved through Resolve;
// the user id the client sends alongside the token is never authoritative.
type IdentityProvider interface {
	// CreateSession verifies the credentials and mints an opaque session
	// token for the user. Unknown email or wrong password returns
	// domain.ErrInvalidCredentials.
	CreateSession(ctx context.Context, email, password string) (token string, user *model.User, err error)
	// Resolve validates a session token and returns the principal.
	// An expired, malformed, or otherwise unverifiable token returns
	// domain.ErrSessionExpired.
	Resolve(ctx context.Context, token string) (*model.User, error)
	// SessionTTLSeconds reports the session lifetime for cookie max-age.
	SessionTTLSeconds() int
}
