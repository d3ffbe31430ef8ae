package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateClassCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := GenerateClassCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		for _, ch := range code {
			assert.True(t, strings.ContainsRune(classCodeAlphabet, ch), "unexpected char %q", ch)
		}
		seen[code] = true
	}
	// 50 draws from 32^6 should essentially never collide.
	assert.Greater(t, len(seen), 45)
}

func TestClassCodeAlphabetHasNoAmbiguousChars(t *testing.T) {
	for _, ch := range "01IO" {
		assert.NotContains(t, classCodeAlphabet, string(ch))
	}
}
