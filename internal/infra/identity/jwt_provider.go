package identity

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"sticker-hunt-backend/internal/domain"
	"sticker-hunt-backend/internal/domain/model"
	"sticker-hunt-backend/internal/domain/ports/adapter"
	"sticker-hunt-backend/internal/usecase"
)

var _ adapter.IdentityProvider = (*JWTProvider)(nil)

type sessionClaims struct {
	jwt.RegisteredClaims
}

// JWTProvider mints and validates HS256 session tokens. The token subject
// is the user id; the principal is re-read from storage on every Resolve
// so a deleted account cannot keep an old session alive.
type JWTProvider struct {
	secret []byte
	ttl    time.Duration
	users  *usecase.UserUseCase
}

func NewJWTProvider(secret string, ttl time.Duration, users *usecase.UserUseCase) *JWTProvider {
	return &JWTProvider{secret: []byte(secret), ttl: ttl, users: users}
}

func (p *JWTProvider) CreateSession(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := p.users.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}

func (p *JWTProvider) Resolve(ctx context.Context, token string) (*model.User, error) {
	claims := &sessionClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrSessionExpired
		}
		return p.secret, nil
	})
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return nil, domain.ErrSessionExpired
	}
	user, err := p.users.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, domain.ErrSessionExpired
	}
	return user, nil
}

func (p *JWTProvider) SessionTTLSeconds() int { return int(p.ttl.Seconds()) }
