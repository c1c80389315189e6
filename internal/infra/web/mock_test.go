//go:build !integration

package web

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"

	"sticker-hunt-backend/internal/domain"
	"sticker-hunt-backend/internal/domain/model"
	"sticker-hunt-backend/internal/domain/ports/repository"
)

// --- Mock Repositories (Ports) ---

type mockStickerRepo struct {
	repository.StickerRepository // Embed interface for forward compatibility
	mu                           sync.Mutex
	byID                         map[string]*model.Sticker
	FindCalls                    int
	FindError                    error
	DeactivateError              error
}

func newMockStickerRepo() *mockStickerRepo {
	return &mockStickerRepo{byID: map[string]*model.Sticker{}}
}

func (m *mockStickerRepo) add(s *model.Sticker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.byID[s.ID] = &cp
}

func (m *mockStickerRepo) findCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FindCalls
}

func (m *mockStickerRepo) FindActiveByCode(ctx context.Context, tx repository.Tx, code string) (*model.Sticker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindCalls++
	if m.FindError != nil {
		return nil, m.FindError
	}
	for _, s := range m.byID {
		if s.Code == code && s.Active {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrStickerNotFound
}

func (m *mockStickerRepo) CountByEvent(ctx context.Context, tx repository.Tx, eventID string) (int, error) {
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

func (m *mockStickerRepo) Deactivate(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeactivateError != nil {
		return m.DeactivateError
	}
	s, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Active = false
	return nil
}

type mockClaimRepo struct {
	repository.ClaimRepository // Embed interface
	mu                         sync.Mutex
	bySticker                  map[string]*model.Claim
	CreateError                error
}

func newMockClaimRepo() *mockClaimRepo {
	return &mockClaimRepo{bySticker: map[string]*model.Claim{}}
}

func (m *mockClaimRepo) Create(ctx context.Context, tx repository.Tx, c *model.Claim) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, ok := m.bySticker[c.StickerID]; ok {
		return domain.ErrAlreadyClaimed
	}
	cp := *c
	m.bySticker[c.StickerID] = &cp
	return nil
}

func (m *mockClaimRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.Claim, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Claim
	for _, c := range m.bySticker {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClaimedAt.After(out[j].ClaimedAt) })
	return out, nil
}

func (m *mockClaimRepo) CountByEvent(ctx context.Context, tx repository.Tx, eventID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.bySticker {
		if c.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (m *mockClaimRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bySticker)
}

type mockUserRepo struct {
	repository.UserRepository // Embed interface
	mu                        sync.Mutex
	byEmail                   map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{byEmail: map[string]*model.User{}}
}

func (m *mockUserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[u.Email]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *u
	m.byEmail[u.Email] = &cp
	return nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byEmail), nil
}

// fakeTxManager runs the callback on the non-transactional path.
type fakeTxManager struct{}

func (fakeTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, repository.NoTX)
}

// --- Mock Identity Provider ---

type mockIdentity struct {
	mu      sync.Mutex
	byToken map[string]*model.User

	CreateToken string
	CreateUser  *model.User
	CreateError error
	TTL         int
}

func newMockIdentity() *mockIdentity {
	return &mockIdentity{byToken: map[string]*model.User{}, TTL: 3600}
}

func (m *mockIdentity) session(token string, u *model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byToken[token] = u
}

func (m *mockIdentity) CreateSession(ctx context.Context, email, password string) (string, *model.User, error) {
	if m.CreateError != nil {
		return "", nil, m.CreateError
	}
	m.session(m.CreateToken, m.CreateUser)
	return m.CreateToken, m.CreateUser, nil
}

func (m *mockIdentity) Resolve(ctx context.Context, token string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byToken[token]
	if !ok {
		return nil, domain.ErrSessionExpired
	}
	return u, nil
}

func (m *mockIdentity) SessionTTLSeconds() int { return m.TTL }

// --- Fake Redis for the rate limiter ---

type fakeRedisClient struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newFakeRedisClient() *fakeRedisClient {
	return &fakeRedisClient{counts: map[string]int64{}}
}

func (f *fakeRedisClient) Ping(ctx context.Context) error { return nil }
func (f *fakeRedisClient) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return nil
}
func (f *fakeRedisClient) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (f *fakeRedisClient) Incr(ctx context.Context, key string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[key]++
	return f.counts[key], nil
}
func (f *fakeRedisClient) Expire(ctx context.Context, key string, exp time.Duration) error {
	return nil
}
func (f *fakeRedisClient) Del(ctx context.Context, keys ...string) error { return nil }
func (f *fakeRedisClient) Close() error                                  { return nil }
