//go:build !integration

package model

import (
	"errors"
	"testing"
	"time"

	"sticker-hunt-backend/internal/domain"
)

// --- Sticker Model Tests ---

func TestNewSticker(t *testing.T) {
	t.Run("should create a new sticker successfully", func(t *testing.T) {
		startTime := time.Now()
		sticker, err := NewSticker("", "JAM-AB12CD", "JAM-2025")

		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if sticker == nil {
			t.Fatal("expected sticker to be non-nil, but got nil")
		}
		if sticker.ID == "" {
			t.Error("expected sticker ID to be non-empty")
		}
		if sticker.Code != "JAM-AB12CD" {
			t.Errorf("expected code to be 'JAM-AB12CD', but got %s", sticker.Code)
		}
		if !sticker.Active {
			t.Error("expected a new sticker to be active")
		}
		if time.Since(startTime) > time.Second {
			t.Errorf("sticker.CreatedAt timestamp is too far from current time")
		}
	})

	t.Run("should trim surrounding whitespace from the code", func(t *testing.T) {
		sticker, err := NewSticker("", "  JAM-AB12CD  ", "JAM-2025")
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if sticker.Code != "JAM-AB12CD" {
			t.Errorf("expected trimmed code, got %q", sticker.Code)
		}
	})

	t.Run("should fail with empty code", func(t *testing.T) {
		sticker, err := NewSticker("", "   ", "JAM-2025")
		if err == nil {
			t.Fatal("expected an error for empty code, but got nil")
		}
		if sticker != nil {
			t.Errorf("expected sticker to be nil on error, but it was not")
		}
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected error to be ErrInvalidArgument, but got %T", err)
		}
	})

	t.Run("should fail with empty event id", func(t *testing.T) {
		_, err := NewSticker("", "JAM-AB12CD", "")
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, but got %v", err)
		}
	})
}

// --- Claim Model Tests ---

func TestNewClaim(t *testing.T) {
	sticker, err := NewSticker("", "JAM-AB12CD", "JAM-2025")
	if err != nil {
		t.Fatalf("NewSticker() failed: %v", err)
	}
	name := "Neon Fox"
	sticker.Name = &name

	t.Run("should denormalize sticker fields into the claim", func(t *testing.T) {
		claim, err := NewClaim("claim-1", "user-1", sticker)
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if claim.StickerID != sticker.ID {
			t.Errorf("expected sticker id %s, got %s", sticker.ID, claim.StickerID)
		}
		if claim.Code != "JAM-AB12CD" {
			t.Errorf("expected code 'JAM-AB12CD', got %s", claim.Code)
		}
		if claim.EventID != "JAM-2025" {
			t.Errorf("expected event id 'JAM-2025', got %s", claim.EventID)
		}
		if claim.StickerName == nil || *claim.StickerName != "Neon Fox" {
			t.Errorf("expected denormalized sticker name, got %v", claim.StickerName)
		}
		if claim.ClaimedAt.IsZero() {
			t.Error("expected ClaimedAt to be set")
		}
	})

	t.Run("should fail without an id or user", func(t *testing.T) {
		if _, err := NewClaim("", "user-1", sticker); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument for empty id, got %v", err)
		}
		if _, err := NewClaim("claim-1", "", sticker); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument for empty user, got %v", err)
		}
	})

	t.Run("should fail with a zero sticker", func(t *testing.T) {
		if _, err := NewClaim("claim-1", "user-1", &Sticker{}); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument for zero sticker, got %v", err)
		}
	})
}

// --- User Model Tests ---

func TestNewUserModel(t *testing.T) {
	t.Run("should normalize the email", func(t *testing.T) {
		user, err := NewUser("", "  Hunter@Example.COM ", "Hunter", "hash")
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if user.Email != "hunter@example.com" {
			t.Errorf("expected normalized email, got %q", user.Email)
		}
	})

	t.Run("should fail with a malformed email", func(t *testing.T) {
		if _, err := NewUser("", "not-an-email", "x", "hash"); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("should fail without a password hash", func(t *testing.T) {
		if _, err := NewUser("", "a@b.c", "x", ""); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}
