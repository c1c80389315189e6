package model

import (
	"strings"
	"time"

	"sticker-hunt-backend/internal/domain"

	"github.com/google/uuid"
)

// Sticker represents a single claimable physical item, unique by code.
// A sticker is claimed at most once: a successful claim flips Active to
// false and the claims table carries a uniqueness constraint on the
// sticker reference.
type Sticker struct {
	ID        string
	Code      string
	EventID   string
	Active    bool
	Name      *string // Pointer to allow for NULL
	ImageURL  *string // Pointer to allow for NULL
	Rarity    *string // Pointer to allow for NULL
	CreatedAt time.Time
}

func NewSticker(id, code, eventID string) (*Sticker, error) {
	if id == "" {
		id = uuid.NewString()
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrInvalidArgument
	}
	if eventID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Sticker{
		ID:        id,
		Code:      code,
		EventID:   eventID,
		Active:    true,
		CreatedAt: time.Now(),
	}, nil
}

func (s *Sticker) IsZero() bool { return s == nil || s.ID == "" }
