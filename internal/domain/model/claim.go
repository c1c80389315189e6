package model

import (
	"time"

	"sticker-hunt-backend/internal/domain"
)

// Claim is the immutable record of one user redeeming one sticker.
// The sticker's display fields are denormalized into the claim so the
// user's collection survives later sticker edits.
type Claim struct {
	ID              string
	UserID          string
	StickerID       string
	EventID         string
	Code            string
	StickerName     *string
	StickerImageURL *string
	StickerRarity   *string
	ClaimedAt       time.Time
}

// NewClaim builds a claim for the given user and sticker. The caller
// supplies the fresh document ID so the ID scheme stays a usecase concern.
func NewClaim(id string, userID string, sticker *Sticker) (*Claim, error) {
	if id == "" || userID == "" {
		return nil, domain.ErrInvalidArgument
	}
	if sticker.IsZero() {
		return nil, domain.ErrInvalidArgument
	}
	return &Claim{
		ID:              id,
		UserID:          userID,
		StickerID:       sticker.ID,
		EventID:         sticker.EventID,
		Code:            sticker.Code,
		StickerName:     sticker.Name,
		StickerImageURL: sticker.ImageURL,
		StickerRarity:   sticker.Rarity,
		ClaimedAt:       time.Now(),
	}, nil
}
