//go:build !integration

package usecase

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v4"

	"sticker-hunt-backend/internal/domain"
	"sticker-hunt-backend/internal/domain/model"
	"sticker-hunt-backend/internal/domain/ports/repository"
)

// --- In-memory repositories (ports) ---

// memStickerRepo is a mutex-guarded in-memory StickerRepository.
type memStickerRepo struct {
	mu       sync.Mutex
	byID     map[string]*model.Sticker
	byCode   map[string]*model.Sticker
	SaveErr  error
	FindErr  error
	DeacErr  error // injected Deactivate failure
	DeacHits int
}

func newMemStickerRepo() *memStickerRepo {
	return &memStickerRepo{
		byID:   make(map[string]*model.Sticker),
		byCode: make(map[string]*model.Sticker),
	}
}

func (m *memStickerRepo) Save(ctx context.Context, tx repository.Tx, s *model.Sticker) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.byCode[s.Code]; dup {
		return domain.ErrAlreadyExists
	}
	cp := *s
	m.byID[s.ID] = &cp
	m.byCode[s.Code] = &cp
	return nil
}

func (m *memStickerRepo) FindActiveByCode(ctx context.Context, tx repository.Tx, code string) (*model.Sticker, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byCode[code]
	if !ok || !s.Active {
		return nil, domain.ErrStickerNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memStickerRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Sticker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memStickerRepo) Deactivate(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	m.DeacHits++
	m.mu.Unlock()
	if m.DeacErr != nil {
		return m.DeacErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Active = false
	return nil
}

func (m *memStickerRepo) List(ctx context.Context, tx repository.Tx, eventID string, offset, limit int) ([]*model.Sticker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Sticker
	for _, s := range m.byID {
		if s.EventID == eventID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memStickerRepo) CountByEvent(ctx context.Context, tx repository.Tx, eventID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.byID {
		if s.EventID == eventID {
			n++
		}
	}
	return n, nil
}

// memClaimRepo enforces the same uniqueness the real store does: at most
// one claim per sticker and per (user, sticker) pair.
type memClaimRepo struct {
	mu        sync.Mutex
	claims    []*model.Claim
	bySticker map[string]*model.Claim
	CreateErr error
}

func newMemClaimRepo() *memClaimRepo {
	return &memClaimRepo{bySticker: make(map[string]*model.Claim)}
}

func (m *memClaimRepo) Create(ctx context.Context, tx repository.Tx, c *model.Claim) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.bySticker[c.StickerID]; dup {
		return domain.ErrAlreadyClaimed
	}
	cp := *c
	m.bySticker[c.StickerID] = &cp
	m.claims = append(m.claims, &cp)
	return nil
}

func (m *memClaimRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Claim
	for i := len(m.claims) - 1; i >= 0; i-- {
		if m.claims[i].UserID == userID {
			cp := *m.claims[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memClaimRepo) CountByEvent(ctx context.Context, tx repository.Tx, eventID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.claims {
		if c.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (m *memClaimRepo) total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.claims)
}

// memUserRepo is a minimal in-memory UserRepository.
type memUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*model.User
	byEmail map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		byID:    make(map[string]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func (m *memUserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.byEmail[u.Email]; dup {
		return domain.ErrAlreadyExists
	}
	cp := *u
	m.byID[u.ID] = &cp
	m.byEmail[u.Email] = &cp
	return nil
}

func (m *memUserRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID), nil
}

// memTxManager fakes repository.TransactionManager: the callback runs
// directly with the non-transactional path.
type memTxManager struct {
	BeginErr error
	Calls    int
}

func (m *memTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	if m.BeginErr != nil {
		return m.BeginErr
	}
	m.Calls++
	return fn(ctx, repository.NoTX)
}
