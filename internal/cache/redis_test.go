package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	t.Run("host and port", func(t *testing.T) {
		client := Connect(ctx, mr.Addr())
		require.NotNil(t, client)
		defer client.Close()
		assert.NoError(t, client.Ping(ctx).Err())
	})

	t.Run("url", func(t *testing.T) {
		client := Connect(ctx, "redis://"+mr.Addr()+"/0")
		require.NotNil(t, client)
		client.Close()
	})

	t.Run("empty address", func(t *testing.T) {
		assert.Nil(t, Connect(ctx, ""))
	})

	t.Run("unreachable", func(t *testing.T) {
		assert.Nil(t, Connect(ctx, "127.0.0.1:1"))
	})
}
