package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordIndices(t *testing.T) {
	assert.Equal(t, []int{0, 12}, WordIndices("tva due; la tva", "tva"))
	assert.Empty(t, WordIndices("tvaé", "tva"))
	assert.Empty(t, WordIndices("réactif", "actif"))
	assert.True(t, ContainsWord("le passif, l'actif", "actif"))
	assert.False(t, ContainsWord("60100", "6010"))
	assert.True(t, ContainsWord("compte 60100.", "60100"))
	assert.Nil(t, WordIndices("abc", ""))
}
