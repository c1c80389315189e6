package model

import (
	"strings"
	"time"

	"sticker-hunt-backend/internal/domain"

	"github.com/google/uuid"
)

// User is the authenticated principal. Only identity asserted via a
// verified session token is trusted; a client-supplied user id is never
// authoritative.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}

func NewUser(id, email, displayName, passwordHash string) (*User, error) {
	if id == "" {
		id = uuid.NewString()
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.ErrInvalidArgument
	}
	if passwordHash == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &User{
		ID:           id,
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}, nil
}

func (u *User) IsZero() bool { return u == nil || u.ID == "" }
