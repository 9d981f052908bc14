package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// ShortCodeGenerator produces fixed-length numeric codes for activation and
// password-reset flows. Codes are drawn uniformly from crypto/rand, one
// digit at a time, so leading zeros are as likely as any other digit.
type ShortCodeGenerator struct{}

// NewShortCodeGenerator creates a ShortCodeGenerator.
func NewShortCodeGenerator() *ShortCodeGenerator {
	return &ShortCodeGenerator{}
}

var ten = big.NewInt(10)

// Generate returns a code of exactly length decimal digits.
func (g *ShortCodeGenerator) Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("code length must be positive, got %d", length)
	}

	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("failed to generate code: %w", err)
		}
		buf[i] = byte('0' + n.Int64())
	}
	return string(buf), nil
}
