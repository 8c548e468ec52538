package tokengen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	seen := make(map[string]struct{})

	for i := 0; i < 200; i++ {
		token, err := Generate(DefaultLength)
		require.NoError(t, err)
		assert.Len(t, token, DefaultLength)
		assert.True(t, IsValid(token), "token %q contains symbols outside the alphabet", token)
		seen[token] = struct{}{}
	}

	// 32^8 комбинаций, коллизии на 200 токенах практически невозможны
	assert.Len(t, seen, 200)
}

func TestGenerate_InvalidLength(t *testing.T) {
	_, err := Generate(0)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestAlphabet_HasNoAmbiguousSymbols(t *testing.T) {
	for _, c := range "01OIL" {
		assert.False(t, strings.ContainsRune(Alphabet, c), "alphabet must not contain %q", c)
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("ABCD2345"))
	assert.False(t, IsValid("ABCD0123"))
	assert.False(t, IsValid("abcd2345"))
	assert.False(t, IsValid(""))
}
