package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	tok, err := issuer.Issue("U1", "sam@careerbridge.test", "JOB_SEEKER")
	require.NoError(t, err)

	claims, err := issuer.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "U1", claims.Subject)
	assert.Equal(t, "sam@careerbridge.test", claims.Email)
	assert.Equal(t, "JOB_SEEKER", claims.Role)

	_, err = NewIssuer("other", time.Hour).Verify(tok)
	assert.Error(t, err, "wrong secret")

	_, err = issuer.Verify("not-a-jwt")
	assert.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	issuer := NewIssuer("secret", time.Minute)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return start }

	tok, err := issuer.Issue("U1", "a@b.c", "EMPLOYER")
	require.NoError(t, err)

	issuer.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, err = issuer.Verify(tok)
	assert.Error(t, err)
}

func TestExpiresAtAndUsable(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return start }
	tok, err := issuer.Issue("U1", "a@b.c", "ADMIN")
	require.NoError(t, err)

	exp, ok := ExpiresAt(tok)
	require.True(t, ok)
	assert.True(t, exp.Equal(start.Add(time.Hour)))

	assert.True(t, Usable(tok, start.Add(30*time.Minute)))
	assert.False(t, Usable(tok, start.Add(2*time.Hour)))

	_, ok = ExpiresAt("opaque-session-token")
	assert.False(t, ok)
	assert.True(t, Usable("opaque-session-token", start), "opaque tokens are trusted")
	assert.False(t, Usable("", start))
}
