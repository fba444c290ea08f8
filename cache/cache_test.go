package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestRedis_GetSetDel(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedis(mr.Addr(), "", 0, time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	var got entry
	ok, err := c.Get(ctx, "hotel:1", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "hotel:1", entry{Name: "Yak & Yeti", Price: 150}))
	ok, err = c.Get(ctx, "hotel:1", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entry{Name: "Yak & Yeti", Price: 150}, got)

	require.NoError(t, c.Del(ctx, "hotel:1", "hotels:all"))
	ok, err = c.Get(ctx, "hotel:1", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_TTL(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedis(mr.Addr(), "", 0, 30*time.Second)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", 1))
	mr.FastForward(31 * time.Second)

	var v int
	ok, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, ok)
}
