package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() TokenManager {
	return TokenManager{Secret: []byte("test-secret"), Issuer: "authcore-test"}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	m := testManager()

	token, err := m.IssueSessionToken("user-1", "ada@x.com", true)
	require.NoError(t, err)

	claims, err := m.VerifySessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ada@x.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.Nil(t, claims.ExpiresAt, "session tokens carry no expiry")
}

func TestResetTokenRoundTrip(t *testing.T) {
	m := testManager()
	m.ResetTTL = 11 * time.Minute

	token, err := m.IssueResetToken("user-2", "bob@x.com", false)
	require.NoError(t, err)

	claims, err := m.VerifyResetToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-2", claims.Subject)
	assert.Equal(t, "bob@x.com", claims.Email)
	assert.False(t, claims.IsAdmin)
	require.NotNil(t, claims.ExpiresAt)
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	m := testManager()

	session, err := m.IssueSessionToken("user-1", "ada@x.com", false)
	require.NoError(t, err)
	reset, err := m.IssueResetToken("user-1", "ada@x.com", false)
	require.NoError(t, err)

	_, err = m.VerifyResetToken(session)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = m.VerifySessionToken(reset)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestExpiredResetToken(t *testing.T) {
	m := testManager()
	m.ResetTTL = time.Millisecond

	token, err := m.IssueResetToken("user-1", "ada@x.com", false)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = m.VerifyResetToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyFailsClosed(t *testing.T) {
	m := testManager()

	for _, garbage := range []string{"", "not-a-token", "a.b.c", "eyJhbGciOiJub25lIn0.e30."} {
		_, err := m.VerifySessionToken(garbage)
		assert.ErrorIs(t, err, ErrTokenInvalid, "input %q", garbage)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m := testManager()
	other := TokenManager{Secret: []byte("other-secret")}

	token, err := other.IssueSessionToken("user-1", "ada@x.com", false)
	require.NoError(t, err)

	_, err = m.VerifySessionToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
