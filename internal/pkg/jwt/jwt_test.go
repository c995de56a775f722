package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestGenerateAndVerify(t *testing.T) {
	token, err := Generate("alice@example.com", "ROLE_ADMIN APPROVE_LOAN", testKey, 3600)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := Verify(token, testKey, false, 0)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, "ROLE_ADMIN APPROVE_LOAN", claims.Scope)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestGenerate_UniqueTokenIDs(t *testing.T) {
	first, err := Generate("alice@example.com", "", testKey, 3600)
	require.NoError(t, err)
	second, err := Generate("alice@example.com", "", testKey, 3600)
	require.NoError(t, err)

	firstClaims, err := Verify(first, testKey, false, 0)
	require.NoError(t, err)
	secondClaims, err := Verify(second, testKey, false, 0)
	require.NoError(t, err)
	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestGenerate_KeyTooShort(t *testing.T) {
	_, err := Generate("alice@example.com", "", "short", 3600)
	assert.ErrorIs(t, err, ErrKeyTooShort)

	_, err = Verify("whatever", "short", false, 0)
	assert.ErrorIs(t, err, ErrKeyTooShort)
}

func TestVerify_WrongKey(t *testing.T) {
	token, err := Generate("alice@example.com", "", testKey, 3600)
	require.NoError(t, err)

	_, err = Verify(token, "ffffffffffffffffffffffffffffffff", false, 0)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := Verify("not.a.token", testKey, false, 0)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_Expired(t *testing.T) {
	// Zero lifetime: expired the moment it is issued.
	token, err := Generate("alice@example.com", "", testKey, 0)
	require.NoError(t, err)

	_, err = Verify(token, testKey, false, 0)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_RefreshWindowOutlivesExpiry(t *testing.T) {
	// Token is already past its stated expiry but still inside the
	// refresh window measured from issue time.
	token, err := Generate("alice@example.com", "", testKey, 0)
	require.NoError(t, err)

	_, err = Verify(token, testKey, false, 0)
	require.ErrorIs(t, err, ErrTokenExpired)

	claims, err := Verify(token, testKey, true, int(time.Hour.Seconds()))
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
}

func TestVerify_RefreshWindowAlsoEnds(t *testing.T) {
	token, err := Generate("alice@example.com", "", testKey, 0)
	require.NoError(t, err)

	_, err = Verify(token, testKey, true, 0)
	assert.ErrorIs(t, err, ErrTokenExpired)
}
