package repository

import (
	"context"

	"sticker-hunt-backend/internal/domain/model"
)

// StickerRepository is the port for the sticker collection.
type StickerRepository interface {
	// Save creates a sticker. Codes are unique; a duplicate code returns
	// domain.ErrAlreadyExists.
	Save(ctx context.Context, tx Tx, s *model.Sticker) error
	// FindActiveByCode finds a sticker that is still claimable. A sticker
	// that never existed and one that has been deactivated are both
	// reported as domain.ErrStickerNotFound.
	FindActiveByCode(ctx context.Context, tx Tx, code string) (*model.Sticker, error)
	FindByID(ctx context.Context, tx Tx, id string) (*model.Sticker, error)
	// Deactivate flips active to false after a successful claim.
	Deactivate(ctx context.Context, tx Tx, id string) error
	List(ctx context.Context, tx Tx, eventID string, offset, limit int) ([]*model.Sticker, error)
	CountByEvent(ctx context.Context, tx Tx, eventID string) (int, error)
}
