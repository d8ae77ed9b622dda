package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService("test-secret-key-for-jwt", "1h", "5m")
	require.NoError(t, err)
	return svc
}

func TestNewJWTServiceRejectsBadDuration(t *testing.T) {
	_, err := NewJWTService("secret", "forever", "5m")
	assert.Error(t, err)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService(t)
	now := time.Now().Truncate(time.Second)
	svc.now = func() time.Time { return now }

	token, exp, err := svc.GenerateAccessToken(Claims{UserID: "user-1", EmployeeID: "emp-1", Role: "Supervisor", Level: 5})
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour).Unix(), exp)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	c, ok := ClaimsFromMap(decoded.PrivateClaims())
	require.True(t, ok)
	assert.Equal(t, Claims{UserID: "user-1", EmployeeID: "emp-1", Role: "Supervisor", Level: 5}, c)
}

func TestSSEToken(t *testing.T) {
	svc := newTestService(t)

	token, expiresIn, err := svc.GenerateSSEToken(Claims{UserID: "user-1", EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	c, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, "emp-1", c.EmployeeID)

	access, _, err := svc.GenerateAccessToken(Claims{UserID: "user-1"})
	require.NoError(t, err)
	_, err = svc.ValidateSSEToken(access)
	assert.Error(t, err)

	_, err = svc.ValidateSSEToken("garbage")
	assert.Error(t, err)
}

func TestClaimsFromMap(t *testing.T) {
	_, ok := ClaimsFromMap(map[string]interface{}{"role": "admin"})
	assert.False(t, ok)

	c, ok := ClaimsFromMap(map[string]interface{}{"user_id": "u", "level": float64(10)})
	require.True(t, ok)
	assert.Equal(t, 10, c.Level)
	assert.Empty(t, c.EmployeeID)
}
