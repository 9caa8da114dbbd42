package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour)

	token, err := m.GenerateToken("driver-1", RoleDeliveryDriver)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "driver-1", claims.Subject)
	assert.Equal(t, RoleDeliveryDriver, claims.Role)
}

func TestManager_RejectsForeignSignature(t *testing.T) {
	token, err := NewManager("other", time.Hour).GenerateToken("chef", RoleChef)
	require.NoError(t, err)

	_, err = NewManager("secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsExpired(t *testing.T) {
	m := &Manager{secret: []byte("secret"), validity: -time.Minute}
	token, err := m.GenerateToken("chef", RoleChef)
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleHeadChef))
	assert.True(t, ValidRole(RoleDeliveryDriver))
	assert.False(t, ValidRole("ADMIN"))
	assert.False(t, ValidRole(""))
}
