package authentication

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", hashed)

	assert.True(t, CheckPassword(hashed, "secret1"))
	assert.False(t, CheckPassword(hashed, "secret2"))
	assert.False(t, CheckPassword("not-a-hash", "secret1"))
}
