package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeStore_GenerateAndClaim(t *testing.T) {
	store := NewCodeStore()

	code, err := store.Generate(42)
	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.Equal(t, strings.ToUpper(code), code)

	adminID, ok := store.Claim(code)
	assert.True(t, ok)
	assert.Equal(t, 42, adminID)

	// Код одноразовый
	_, ok = store.Claim(code)
	assert.False(t, ok)
}

func TestCodeStore_ClaimIsCaseInsensitive(t *testing.T) {
	store := NewCodeStore()

	code, err := store.Generate(7)
	require.NoError(t, err)

	adminID, ok := store.Claim("  " + strings.ToLower(code) + " ")
	assert.True(t, ok)
	assert.Equal(t, 7, adminID)
}

func TestCodeStore_RegenerateReplacesCode(t *testing.T) {
	store := NewCodeStore()

	first, err := store.Generate(1)
	require.NoError(t, err)
	second, err := store.Generate(1)
	require.NoError(t, err)

	_, ok := store.Claim(first)
	assert.False(t, ok, "старый код не должен работать после перегенерации")

	adminID, ok := store.Claim(second)
	assert.True(t, ok)
	assert.Equal(t, 1, adminID)
}

func TestCodeStore_ExpiredCodeRejected(t *testing.T) {
	store := NewCodeStore()

	current := time.Now()
	store.now = func() time.Time { return current }

	code, err := store.Generate(5)
	require.NoError(t, err)

	current = current.Add(CodeTTL + time.Second)

	_, ok := store.Claim(code)
	assert.False(t, ok)

	// Просроченная запись удалена при Claim
	assert.Equal(t, 0, store.Sweep())
}

func TestCodeStore_Sweep(t *testing.T) {
	store := NewCodeStore()

	current := time.Now()
	store.now = func() time.Time { return current }

	_, err := store.Generate(1)
	require.NoError(t, err)
	_, err = store.Generate(2)
	require.NoError(t, err)

	current = current.Add(CodeTTL + time.Minute)

	fresh, err := store.Generate(3)
	require.NoError(t, err)

	assert.Equal(t, 2, store.Sweep())

	adminID, ok := store.Claim(fresh)
	assert.True(t, ok)
	assert.Equal(t, 3, adminID)
}

func TestCodeStore_Revoke(t *testing.T) {
	store := NewCodeStore()

	code, err := store.Generate(9)
	require.NoError(t, err)

	store.Revoke(9)

	_, ok := store.Claim(code)
	assert.False(t, ok)
}
