package usecase

import (
	"context"

	"github.com/jackc/pgx/v4"

	"sticker-hunt-backend/internal/domain"
	"sticker-hunt-backend/internal/domain/ports/repository"
)

// EventTotals is the public scoreboard for one event.
type EventTotals struct {
	Users    int
	Stickers int
	Claimed  int
}

// StatsUseCase aggregates event progress counters.
type StatsUseCase struct {
	users    repository.UserRepository
	stickers repository.StickerRepository
	claims   repository.ClaimRepository
	txm      repository.TransactionManager
}

func NewStatsUseCase(
	users repository.UserRepository,
	stickers repository.StickerRepository,
	claims repository.ClaimRepository,
	txm repository.TransactionManager,
) *StatsUseCase {
	return &StatsUseCase{users: users, stickers: stickers, claims: claims, txm: txm}
}

// Totals counts hunters, stickers, and claimed stickers for the event.
// The three counts run inside one read-only transaction so a claim landing
// mid-read cannot produce claimed > stickers.
func (uc *StatsUseCase) Totals(ctx context.Context, eventID string) (*EventTotals, error) {
	if eventID == "" {
		return nil, domain.ErrInvalidArgument
	}
	var totals EventTotals
	err := uc.txm.WithTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, func(ctx context.Context, tx repository.Tx) error {
		var err error
		if totals.Users, err = uc.users.CountUsers(ctx, tx); err != nil {
			return err
		}
		if totals.Stickers, err = uc.stickers.CountByEvent(ctx, tx, eventID); err != nil {
			return err
		}
		totals.Claimed, err = uc.claims.CountByEvent(ctx, tx, eventID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &totals, nil
}
