package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKV(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV().Seed("seeded", "1")

	require.NoError(t, kv.Put(ctx, "a", "x"))
	v, ok, err := kv.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", v)
	assert.Equal(t, []string{"a", "seeded"}, kv.Keys())
	assert.Equal(t, 1, kv.Puts())

	boom := errors.New("disk full")
	kv.FailWrites(boom)
	assert.ErrorIs(t, kv.Put(ctx, "a", "y"), boom)
	assert.ErrorIs(t, kv.Delete(ctx, "a"), boom)
	v, _ = kv.Value("a")
	assert.Equal(t, "x", v)

	kv.FailWrites(nil)
	require.NoError(t, kv.Delete(ctx, "a"))
	_, ok = kv.Value("a")
	assert.False(t, ok)
}
