package middleware

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-nexus/backend/internal/testhelpers"
)

func TestRedisLimiterFixedWindow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}
	client := testhelpers.SetupTestRedis(t)

	l := NewRedisLimiter(client, RateLimitConfig{Window: time.Hour, Limit: 3, KeyPrefix: "test:rl"})
	ctx := context.Background()

	for i := 3; i > 0; i-- {
		d, err := l.Allow(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Equal(t, i-1, d.Remaining)
	}
	d, err := l.Allow(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.True(t, d.Reset.After(time.Now()))

	ttl, err := client.TTL(ctx, "test:rl:alice:"+strconv.FormatInt(time.Now().Truncate(time.Hour).Unix(), 10)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
