package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRunID(t *testing.T) {
	first, err := GenerateRunID()
	require.NoError(t, err)
	second, err := GenerateRunID()
	require.NoError(t, err)

	assert.Len(t, first, runIDLength)
	assert.NotEqual(t, first, second)
	for _, r := range first {
		assert.True(t, strings.ContainsRune(runIDAlphabet, r), "caractere inesperado %q", r)
	}
}
