package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestVerifier_PlainPassword(t *testing.T) {
	v, err := NewVerifier("hunter2", "")
	require.NoError(t, err)

	assert.True(t, v.Verify("hunter2"))
	assert.False(t, v.Verify("hunter3"))
	assert.False(t, v.Verify(""))
}

func TestVerifier_HashWins(t *testing.T) {
	hash, err := HashPassword("from-hash")
	require.NoError(t, err)

	v, err := NewVerifier("from-plain", hash)
	require.NoError(t, err)

	assert.True(t, v.Verify("from-hash"))
	assert.False(t, v.Verify("from-plain"))
}

func TestVerifier_Errors(t *testing.T) {
	_, err := NewVerifier("", "")
	assert.EqualError(t, err, ErrMsgNoPassword)

	_, err = NewVerifier("", "not-a-hash")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgBadPasswordHash)
}

func TestSessions_IssueAndValidate(t *testing.T) {
	s, err := NewSessions(testSecret, time.Hour)
	require.NoError(t, err)
	now := time.Date(2024, 3, 5, 7, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	token, expires, err := s.Issue()
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expires)
	assert.NoError(t, s.Validate(token))

	now = now.Add(2 * time.Hour)
	assert.ErrorIs(t, s.Validate(token), ErrInvalidSession, "expired tokens are rejected")
}

func TestSessions_RejectsForeignTokens(t *testing.T) {
	s, err := NewSessions(testSecret, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultSessionTTL, s.TTL())

	other, err := NewSessions(strings.Repeat("z", MinSecretLength), time.Hour)
	require.NoError(t, err)
	foreign, _, err := other.Issue()
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    SessionIssuer,
		Subject:   SessionSubject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   SessionSubject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":        "",
		"garbage":      "not.a.jwt",
		"other secret": foreign,
		"alg none":     noneAlg,
		"wrong issuer": wrongIssuer,
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, s.Validate(token), ErrInvalidSession)
		})
	}
}

func TestNewSessions_ShortSecret(t *testing.T) {
	_, err := NewSessions("short", time.Hour)
	assert.Error(t, err)
}
