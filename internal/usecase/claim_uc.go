// File: internal/usecase/claim_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"sticker-hunt-backend/internal/domain"
	"sticker-hunt-backend/internal/domain/model"
	"sticker-hunt-backend/internal/domain/ports/repository"
	"sticker-hunt-backend/internal/infra/metrics"
)

// ClaimUseCase implements the redemption flow: resolve an active sticker
// by code, create exactly one claim for the caller, then deactivate the
// sticker.
//
// There is deliberately no locking and no transaction spanning the lookup
// and the insert. Two concurrent attempts can both pass the lookup; the
// store's uniqueness constraint on the claim's sticker reference lets only
// one insert succeed, the loser observes domain.ErrAlreadyClaimed. Retries
// are therefore safe for callers: a code that has been claimed once always
// answers ErrAlreadyClaimed, never a second claim.
type ClaimUseCase struct {
	stickers repository.StickerRepository
	claims   repository.ClaimRepository
	log      *zerolog.Logger
}

func NewClaimUseCase(stickers repository.StickerRepository, claims repository.ClaimRepository, logger *zerolog.Logger) *ClaimUseCase {
	return &ClaimUseCase{stickers: stickers, claims: claims, log: logger}
}

// Redeem claims the sticker matching code for the given user.
// Unknown and deactivated codes are indistinguishable to the caller
// (both ErrStickerNotFound) so codes cannot be enumerated.
func (uc *ClaimUseCase) Redeem(ctx context.Context, user *model.User, code string) (*model.Claim, error) {
	if user.IsZero() || code == "" {
		return nil, domain.ErrInvalidArgument
	}

	sticker, err := uc.stickers.FindActiveByCode(ctx, repository.NoTX, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrStickerNotFound) {
			return nil, domain.ErrStickerNotFound
		}
		return nil, fmt.Errorf("find sticker: %w", err)
	}

	claim, err := model.NewClaim(ulid.Make().String(), user.ID, sticker)
	if err != nil {
		return nil, err
	}

	if err := uc.claims.Create(ctx, repository.NoTX, claim); err != nil {
		if errors.Is(err, domain.ErrAlreadyClaimed) {
			metrics.IncClaimOutcome("conflict")
			return nil, domain.ErrAlreadyClaimed
		}
		return nil, fmt.Errorf("create claim: %w", err)
	}

	// Best effort: the user is already credited, so a deactivation failure
	// must not fail the request. A second claimant racing in before the
	// flag lands is closed out by the uniqueness constraint above.
	if err := uc.stickers.Deactivate(ctx, repository.NoTX, sticker.ID); err != nil {
		uc.log.Warn().Err(err).
			Str("sticker_id", sticker.ID).
			Str("claim_id", claim.ID).
			Msg("failed to deactivate sticker after claim")
	}

	metrics.IncClaimOutcome("success")
	return claim, nil
}

// ListForUser returns the caller's claims, newest first.
func (uc *ClaimUseCase) ListForUser(ctx context.Context, userID string) ([]*model.Claim, error) {
	if userID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return uc.claims.ListByUser(ctx, repository.NoTX, userID)
}
