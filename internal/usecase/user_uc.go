package usecase

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"sticker-hunt-backend/internal/domain"
	"sticker-hunt-backend/internal/domain/model"
	"sticker-hunt-backend/internal/domain/ports/repository"
)

const minPasswordLength = 8

// UserUseCase manages hunter accounts.
type UserUseCase struct {
	users repository.UserRepository
}

func NewUserUseCase(users repository.UserRepository) *UserUseCase {
	return &UserUseCase{users: users}
}

// Register creates an account with a bcrypt-hashed password.
func (uc *UserUseCase) Register(ctx context.Context, email, displayName, password string) (*model.User, error) {
	if len(password) < minPasswordLength {
		return nil, domain.ErrInvalidArgument
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user, err := model.NewUser("", email, displayName, string(hash))
	if err != nil {
		return nil, err
	}
	if err := uc.users.Save(ctx, repository.NoTX, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies an email/password pair. Unknown emails and wrong
// passwords are reported identically so accounts cannot be enumerated.
func (uc *UserUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := uc.users.FindByEmail(ctx, repository.NoTX, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// FindByID loads a user by primary id.
func (uc *UserUseCase) FindByID(ctx context.Context, id string) (*model.User, error) {
	return uc.users.FindByID(ctx, repository.NoTX, id)
}
