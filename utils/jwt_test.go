package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret")

	token, err := m.Generate("64b1f0a2c3d4e5f607182930")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "64b1f0a2c3d4e5f607182930", claims.UserID)
	assert.Equal(t, "property-listing", claims.Issuer)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret-a").Generate("user1")
	require.NoError(t, err)

	_, err = NewJWTManager("secret-b").Validate(token)
	assert.Error(t, err)
}

func TestJWTRejectsGarbage(t *testing.T) {
	m := NewJWTManager("test-secret")
	_, err := m.Validate("not.a.token")
	assert.Error(t, err)
}
