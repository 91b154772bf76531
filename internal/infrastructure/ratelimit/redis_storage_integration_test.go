//go:build integration

package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/jhoicas/stockroom-api/internal/infrastructure/ratelimit"
)

func TestRedisStorage(t *testing.T) {
	ctx := context.Background()
	rdC, err := tcRedis.RunContainer(ctx, testcontainers.WithImage("redis:7-alpine"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	rdb, err := ratelimit.NewRedisClient(ctx, rdURL)
	require.NoError(t, err)
	store := ratelimit.NewRedisStorage(rdb, "test:")
	t.Cleanup(func() { _ = store.Close() })

	val, err := store.Get("10.0.0.1")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, store.Set("10.0.0.1", []byte("3"), time.Minute))
	val, err = store.Get("10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), val)

	require.NoError(t, rdb.Set(ctx, "otra:clave", "x", 0).Err())
	require.NoError(t, store.Reset())
	val, err = store.Get("10.0.0.1")
	require.NoError(t, err)
	assert.Nil(t, val)

	other, err := rdb.Get(ctx, "otra:clave").Result()
	require.NoError(t, err)
	assert.Equal(t, "x", other, "Reset no toca claves sin el prefijo")

	require.NoError(t, store.Set("10.0.0.2", []byte("1"), 50*time.Millisecond))
	time.Sleep(150 * time.Millisecond)
	val, err = store.Get("10.0.0.2")
	require.NoError(t, err)
	assert.Nil(t, val, "la clave vence con exp")
}
