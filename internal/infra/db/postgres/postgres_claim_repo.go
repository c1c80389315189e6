package postgres

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"sticker-hunt-backend/internal/domain"
	"sticker-hunt-backend/internal/domain/model"
	"sticker-hunt-backend/internal/domain/ports/repository"
)

// Ensure implementation satisfies the interface.
var _ repository.ClaimRepository = (*claimRepo)(nil)

type claimRepo struct {
	pool *pgxpool.Pool
}

func NewClaimRepo(pool *pgxpool.Pool) repository.ClaimRepository {
	return &claimRepo{pool: pool}
}

// Create inserts a claim row. The unique indexes on sticker_id and on
// (user_id, sticker_id) make this the idempotency boundary of the
// redemption flow: when two requests race past the active check, exactly
// one insert lands here and the other maps to ErrAlreadyClaimed.
func (r *claimRepo) Create(ctx context.Context, tx repository.Tx, c *model.Claim) error {
	const q = `
INSERT INTO claims (
  id, user_id, sticker_id, event_id, code,
  sticker_name, sticker_image_url, sticker_rarity, claimed_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`
	_, err := execSQL(ctx, r.pool, tx, q,
		c.ID, c.UserID, c.StickerID, c.EventID, c.Code,
		c.StickerName, c.StickerImageURL, c.StickerRarity, c.ClaimedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyClaimed
		}
		return err
	}
	return nil
}

func (r *claimRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Claim, error) {
	const q = `
SELECT id, user_id, sticker_id, event_id, code,
       sticker_name, sticker_image_url, sticker_rarity, claimed_at
  FROM claims
 WHERE user_id = $1
 ORDER BY claimed_at DESC;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Claim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *claimRepo) CountByEvent(ctx context.Context, tx repository.Tx, eventID string) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM claims WHERE event_id = $1;`, eventID)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return n, nil
}

func scanClaim(row pgx.Row) (*model.Claim, error) {
	var c model.Claim
	err := row.Scan(&c.ID, &c.UserID, &c.StickerID, &c.EventID, &c.Code,
		&c.StickerName, &c.StickerImageURL, &c.StickerRarity, &c.ClaimedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
