package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"sticker-hunt-backend/internal/domain"
	"sticker-hunt-backend/internal/domain/model"
	"sticker-hunt-backend/internal/domain/ports/repository"
)

// Ensure implementation satisfies the interface.
var _ repository.StickerRepository = (*stickerRepo)(nil)

type stickerRepo struct {
	pool *pgxpool.Pool
}

func NewStickerRepo(pool *pgxpool.Pool) repository.StickerRepository {
	return &stickerRepo{pool: pool}
}

func (r *stickerRepo) Save(ctx context.Context, tx repository.Tx, s *model.Sticker) error {
	const q = `
INSERT INTO stickers (id, code, event_id, active, name, image_url, rarity, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`
	_, err := execSQL(ctx, r.pool, tx, q,
		s.ID, s.Code, s.EventID, s.Active, s.Name, s.ImageURL, s.Rarity, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindActiveByCode finds a sticker that is still claimable. Unknown and
// deactivated codes are both reported as ErrStickerNotFound so the caller
// cannot tell them apart.
func (r *stickerRepo) FindActiveByCode(ctx context.Context, tx repository.Tx, code string) (*model.Sticker, error) {
	const q = `
SELECT id, code, event_id, active, name, image_url, rarity, created_at
  FROM stickers
 WHERE code = $1 AND active = TRUE;
`
	row, err := pickRow(ctx, r.pool, tx, q, code)
	if err != nil {
		return nil, err
	}
	s, err := scanSticker(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStickerNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return s, nil
}

func (r *stickerRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Sticker, error) {
	const q = `
SELECT id, code, event_id, active, name, image_url, rarity, created_at
  FROM stickers
 WHERE id = $1;
`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	s, err := scanSticker(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return s, nil
}

func (r *stickerRepo) Deactivate(ctx context.Context, tx repository.Tx, id string) error {
	const q = `UPDATE stickers SET active = FALSE WHERE id = $1;`
	cmd, err := execSQL(ctx, r.pool, tx, q, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *stickerRepo) List(ctx context.Context, tx repository.Tx, eventID string, offset, limit int) ([]*model.Sticker, error) {
	const q = `
SELECT id, code, event_id, active, name, image_url, rarity, created_at
  FROM stickers
 WHERE event_id = $1
 ORDER BY created_at
OFFSET $2 LIMIT $3;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, q, eventID, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Sticker
	for rows.Next() {
		s, err := scanSticker(rows)
		if err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *stickerRepo) CountByEvent(ctx context.Context, tx repository.Tx, eventID string) (int, error) {
	row, err := pickRow(ctx, r.pool, tx, `SELECT COUNT(*) FROM stickers WHERE event_id = $1;`, eventID)
	if err != nil {
		return 0, err
	}
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return n, nil
}

func scanSticker(row pgx.Row) (*model.Sticker, error) {
	var s model.Sticker
	err := row.Scan(&s.ID, &s.Code, &s.EventID, &s.Active, &s.Name, &s.ImageURL, &s.Rarity, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
