package usecase

import (
	"context"
	"errors"

	"sticker-hunt-backend/internal/domain"
	"sticker-hunt-backend/internal/domain/model"
	"sticker-hunt-backend/internal/domain/ports/repository"
)

// StickerUseCase covers the out-of-band sticker lifecycle: seeding new
// codes before an event and inspecting the pool. Stickers are never
// deleted; a claimed sticker simply stays inactive.
type StickerUseCase struct {
	stickers repository.StickerRepository
}

func NewStickerUseCase(stickers repository.StickerRepository) *StickerUseCase {
	return &StickerUseCase{stickers: stickers}
}

// Create registers one claimable sticker. Duplicate codes are rejected by
// the store's unique index.
func (uc *StickerUseCase) Create(ctx context.Context, code, eventID string) (*model.Sticker, error) {
	sticker, err := model.NewSticker("", code, eventID)
	if err != nil {
		return nil, err
	}
	if err := uc.stickers.Save(ctx, repository.NoTX, sticker); err != nil {
		return nil, err
	}
	return sticker, nil
}

// CreateBatch seeds count stickers with generated codes, retrying code
// collisions against the unique index a few times per sticker.
func (uc *StickerUseCase) CreateBatch(ctx context.Context, count int, prefix, eventID string) ([]*model.Sticker, error) {
	if count <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	out := make([]*model.Sticker, 0, count)
	for i := 0; i < count; i++ {
		var created *model.Sticker
		for attempt := 0; attempt < 5; attempt++ {
			code, err := generateStickerCode(prefix)
			if err != nil {
				return out, err
			}
			created, err = uc.Create(ctx, code, eventID)
			if err == nil {
				break
			}
			if !errors.Is(err, domain.ErrAlreadyExists) {
				return out, err
			}
			created = nil
		}
		if created == nil {
			return out, domain.ErrAlreadyExists
		}
		out = append(out, created)
	}
	return out, nil
}

// List pages through an event's stickers.
func (uc *StickerUseCase) List(ctx context.Context, eventID string, offset, limit int) ([]*model.Sticker, error) {
	return uc.stickers.List(ctx, repository.NoTX, eventID, offset, limit)
}

// Count returns the sticker total for an event.
func (uc *StickerUseCase) Count(ctx context.Context, eventID string) (int, error) {
	return uc.stickers.CountByEvent(ctx, repository.NoTX, eventID)
}
