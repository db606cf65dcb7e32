package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_JSONRoundTripAndExpiry(t *testing.T) {
	m := NewMemory()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, m.SetJSON(ctx, "k", []string{"a", "b"}, time.Minute))

	var got []string
	hit, err := m.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"a", "b"}, got)

	now = now.Add(2 * time.Minute)
	hit, err = m.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemory_TakeIsSingleUse(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, "state", "ada@example.com", time.Minute))

	v, ok, err := m.Take(ctx, "state")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ada@example.com", v)

	_, ok, err = m.Take(ctx, "state")
	require.NoError(t, err)
	assert.False(t, ok)
}

var (
	_ Cache      = (*RedisCache)(nil)
	_ StateStore = (*RedisCache)(nil)
	_ Cache      = (*Memory)(nil)
	_ StateStore = (*Memory)(nil)
)
