package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Minute)

	raw, err := ti.Issue("founder@example.com")
	require.NoError(t, err)

	sub, err := ti.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "founder@example.com", sub)
}

func TestTokenIssuer_RejectsWrongSecret(t *testing.T) {
	raw, err := NewTokenIssuer("secret", time.Minute).Issue("a@b.c")
	require.NoError(t, err)

	_, err = NewTokenIssuer("other", time.Minute).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	ti.now = func() time.Time { return issued }

	raw, err := ti.Issue("a@b.c")
	require.NoError(t, err)

	ti.now = time.Now
	_, err = ti.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_RejectsGarbage(t *testing.T) {
	_, err := NewTokenIssuer("secret", 0).Verify("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_EmptySubject(t *testing.T) {
	_, err := NewTokenIssuer("secret", 0).Issue("")
	assert.Error(t, err)
}
