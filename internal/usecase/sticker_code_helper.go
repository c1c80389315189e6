package usecase

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"strings"
)

// generateStickerCode creates a random printable sticker code.
// Format: PREFIX-XXXXXX (6 uppercase hex chars).
func generateStickerCode(prefix string) (string, error) {
	buffer := make([]byte, 3)
	if _, err := io.ReadFull(rand.Reader, buffer); err != nil {
		return "", err
	}
	suffix := strings.ToUpper(hex.EncodeToString(buffer))
	if prefix == "" {
		return suffix, nil
	}
	return prefix + "-" + suffix, nil
}
