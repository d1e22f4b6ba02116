package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuerRoundTrip(t *testing.T) {
	issuer := NewIssuer("secret", time.Minute, time.Hour)
	alice := Principal{ID: 7, Username: "alice"}

	access, refresh, err := issuer.Pair(alice)
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)

	claims, err := issuer.Parse(access, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, alice, claims.Principal())
	assert.NotEmpty(t, claims.ID)

	claims, err = issuer.Parse(refresh, RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestIssuerRejectsWrongType(t *testing.T) {
	issuer := NewIssuer("secret", time.Minute, time.Hour)
	refresh, err := issuer.Issue(Principal{ID: 1, Username: "bob"}, RefreshToken)
	require.NoError(t, err)

	_, err = issuer.Parse(refresh, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Parse(refresh, "")
	assert.NoError(t, err)
}

func TestIssuerRejectsExpiredAndForeignTokens(t *testing.T) {
	issuer := NewIssuer("secret", time.Minute, time.Hour)
	start := time.Now()
	issuer.now = func() time.Time { return start }

	access, err := issuer.Issue(Principal{ID: 1, Username: "bob"}, AccessToken)
	require.NoError(t, err)

	issuer.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, err = issuer.Parse(access, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewIssuer("other-secret", time.Minute, time.Hour)
	foreign, err := other.Issue(Principal{ID: 1, Username: "bob"}, AccessToken)
	require.NoError(t, err)
	_, err = NewIssuer("secret", time.Minute, time.Hour).Parse(foreign, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Parse("not-a-token", AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
