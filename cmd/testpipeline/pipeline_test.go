// Package testpipeline drives a live duskkv server with a real
// go-redis client, pipelining requests across every value family to
// exercise the wire codec and dispatcher end-to-end. Unlike the
// teacher's version, which required a server already running on
// 127.0.0.1:6380, this spins up its own in-process instance so the
// test is self-contained.
package testpipeline

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskkv/duskkv/internal/server"
	"github.com/duskkv/duskkv/internal/store"
)

// startServer boots an Engine over a ShardedStore on an OS-assigned
// loopback port and serves connections until the test ends.
func startServer(t *testing.T) string {
	t.Helper()

	eng, err := store.NewShardedStore(16)
	require.NoError(t, err)

	engine := server.NewEngine(eng, nil, nil)
	t.Cleanup(engine.Shutdown)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { listener.Close() }) //nolint:errcheck

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go func() {
				peer := server.NewPeer(conn)
				defer peer.Close() //nolint:errcheck
				peer.Serve(engine) //nolint:errcheck
			}()
		}
	}()

	return listener.Addr().String()
}

func TestPipelining_StringFamily(t *testing.T) {
	addr := startServer(t)
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	ctx := context.Background()
	const count = 10_000
	pipe := rdb.Pipeline()

	for i := 0; i < count; i++ {
		key := fmt.Sprintf("pipe_key_%d", i)
		val := fmt.Sprintf("val_%d", i)
		pipe.Set(ctx, key, val, 0)
	}

	getResults := make([]*redis.StringCmd, count)
	for i := 0; i < count; i++ {
		key := fmt.Sprintf("pipe_key_%d", i)
		getResults[i] = pipe.Get(ctx, key)
	}

	start := time.Now()
	_, err := pipe.Exec(ctx)
	elapsed := time.Since(start)
	assert.NoError(t, err, "pipeline execution failed")
	t.Logf("pipeline executed in %v", elapsed)

	for i := 0; i < count; i++ {
		expected := fmt.Sprintf("val_%d", i)
		val, err := getResults[i].Result()
		assert.NoError(t, err)
		assert.Equal(t, expected, val, "key %d mismatch", i)
	}
}

func TestPipelining_AllFamilies(t *testing.T) {
	addr := startServer(t)
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	ctx := context.Background()
	const count = 2_000
	pipe := rdb.Pipeline()

	lpushResults := make([]*redis.IntCmd, count)
	saddResults := make([]*redis.IntCmd, count)
	hsetResults := make([]*redis.IntCmd, count)
	zaddResults := make([]*redis.IntCmd, count)

	for i := 0; i < count; i++ {
		lpushResults[i] = pipe.LPush(ctx, fmt.Sprintf("list_%d", i), "a", "b", "c")
		saddResults[i] = pipe.SAdd(ctx, fmt.Sprintf("set_%d", i), "x", "y", "z")
		hsetResults[i] = pipe.HSet(ctx, fmt.Sprintf("hash_%d", i), "f1", "v1")
		zaddResults[i] = pipe.ZAdd(ctx, fmt.Sprintf("zset_%d", i),
			redis.Z{Score: 1, Member: "one"},
			redis.Z{Score: 2, Member: "two"},
		)
	}

	_, err := pipe.Exec(ctx)
	require.NoError(t, err, "pipeline execution failed")

	for i := 0; i < count; i++ {
		n, err := lpushResults[i].Result()
		assert.NoError(t, err)
		assert.EqualValues(t, 3, n)

		n, err = saddResults[i].Result()
		assert.NoError(t, err)
		assert.EqualValues(t, 3, n)

		n, err = hsetResults[i].Result()
		assert.NoError(t, err)
		assert.EqualValues(t, 1, n)

		n, err = zaddResults[i].Result()
		assert.NoError(t, err)
		assert.EqualValues(t, 2, n)
	}
}
