package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortCodeGenerator_Length(t *testing.T) {
	gen := NewShortCodeGenerator()

	for _, length := range []int{1, 4, 6, 10} {
		code, err := gen.Generate(length)
		require.NoError(t, err)
		assert.Len(t, code, length)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "code %q contains non-digit %q", code, c)
		}
	}
}

func TestShortCodeGenerator_InvalidLength(t *testing.T) {
	gen := NewShortCodeGenerator()

	_, err := gen.Generate(0)
	assert.Error(t, err)
	_, err = gen.Generate(-3)
	assert.Error(t, err)
}

// Every digit should appear in each position over many draws; in particular
// codes may start with zero.
func TestShortCodeGenerator_Distribution(t *testing.T) {
	gen := NewShortCodeGenerator()

	const draws = 10000
	counts := make(map[byte]int)
	leadingZero := false
	for i := 0; i < draws; i++ {
		code, err := gen.Generate(6)
		require.NoError(t, err)
		counts[code[0]]++
		if code[0] == '0' {
			leadingZero = true
		}
	}

	assert.True(t, leadingZero, "leading zeros must be possible")
	for d := byte('0'); d <= '9'; d++ {
		assert.Greater(t, counts[d], 0, "digit %q never drawn in first position", d)
	}
}
