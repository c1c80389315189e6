// File: internal/infra/security/signature.go
package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"sticker-hunt-backend/internal/config"
	"sticker-hunt-backend/internal/domain"
)

// StickerSigner authenticates sticker codes with a keyed hash. Printed
// stickers carry a truncated hex HMAC-SHA256 of the code under a shared
// secret; a deployment without a secret skips verification entirely.
type StickerSigner struct {
	secret           []byte
	signatureLength  int
	legacyTruncation bool
}

func NewStickerSigner(cfg config.SigningConfig) *StickerSigner {
	return &StickerSigner{
		secret:           []byte(cfg.Secret),
		signatureLength:  cfg.SignatureLength,
		legacyTruncation: cfg.LegacyTruncation,
	}
}

// Enabled reports whether this deployment requires signatures.
func (s *StickerSigner) Enabled() bool { return len(s.secret) > 0 }

// Sign returns the truncated hex HMAC for a code, as printed on stickers.
func (s *StickerSigner) Sign(code string) string {
	digest := s.digest(code)
	if s.signatureLength > 0 && s.signatureLength < len(digest) {
		return digest[:s.signatureLength]
	}
	return digest
}

// Verify checks a caller-supplied signature against the expected HMAC
// using a constant-time comparison.
//
// Default policy: the provided signature must have exactly the configured
// length; the caller does not get to choose how much of the digest is
// compared. Legacy mode reproduces the original truncate-to-provided-length
// behavior for codes printed by older seeding runs. That mode trusts a
// client-supplied length and is weaker against short forged signatures.
func (s *StickerSigner) Verify(code, provided string) error {
	if !s.Enabled() {
		return nil
	}
	if provided == "" {
		return domain.ErrSignatureRequired
	}

	expected := s.digest(code)
	if s.legacyTruncation {
		if len(provided) < len(expected) {
			expected = expected[:len(provided)]
		}
	} else {
		// A configured length beyond the digest can only mean the full
		// digest; clamping keeps Verify in agreement with Sign.
		want := s.signatureLength
		if want <= 0 || want > len(expected) {
			want = len(expected)
		}
		if len(provided) != want {
			return domain.ErrSignatureMismatch
		}
		expected = expected[:want]
	}

	if subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) != 1 {
		return domain.ErrSignatureMismatch
	}
	return nil
}

func (s *StickerSigner) digest(code string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(code))
	return hex.EncodeToString(mac.Sum(nil))
}
