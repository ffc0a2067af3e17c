package configs

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTSecret(t *testing.T) {
	a, err := NewJWTSecret()
	require.NoError(t, err)
	b, err := NewJWTSecret()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	raw, err := base64.URLEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, 64)
}
