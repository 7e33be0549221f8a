package identity_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watch_store/internal/identity"
)

func TestVerifyRoundTrip(t *testing.T) {
	token, err := identity.Sign("a@x.com", "secret", time.Hour)
	require.NoError(t, err)

	email, err := identity.NewJWTVerifier("secret").Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := identity.Sign("a@x.com", "secret", time.Hour)
	require.NoError(t, err)

	_, err = identity.NewJWTVerifier("other-secret").Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	token, err := identity.Sign("a@x.com", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = identity.NewJWTVerifier("secret").Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := identity.NewJWTVerifier("secret").Verify(context.Background(), "not.a.jwt")
	assert.Error(t, err)
}

func TestVerifyRequiresEmailClaim(t *testing.T) {
	token, err := identity.Sign("", "secret", time.Hour)
	require.NoError(t, err)

	_, err = identity.NewJWTVerifier("secret").Verify(context.Background(), token)
	assert.ErrorIs(t, err, identity.ErrNoEmail)
}
