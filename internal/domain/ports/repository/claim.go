package repository

import (
	"context"

	"sticker-hunt-backend/internal/domain/model"
)

// ClaimRepository is the port for the claims collection.
//
// The store enforces at most one claim per sticker and at most one claim
// per (user, sticker) pair. Create is the idempotency boundary for the
// redemption flow: Concurrent attempts on the same sticker can only let
// one insert succeed, the rest observe domain.ErrAlreadyClaimed.
type ClaimRepository interface {
	// Create inserts a new claim. A uniqueness violation on the sticker
	// reference (or the user+sticker pair) returns domain.ErrAlreadyClaimed.
	Create(ctx context.Context, tx Tx, c *model.Claim) error
	// ListByUser returns the user's claims, newest first.
	ListByUser(ctx context.Context, tx Tx, userID string) ([]*model.Claim, error)
	CountByEvent(ctx context.Context, tx Tx, eventID string) (int, error)
}
