// Package testutil provides shared helpers for integration tests that need
// live infrastructure.
package testutil

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTestRedisDB = 9

// TestRedisAddr resolves the Redis address used by integration tests.
// Defaults to a local instance; CI sets TEST_REDIS_ADDR explicitly.
func TestRedisAddr() string {
	if addr := os.Getenv("TEST_REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// SetupTestRedis connects to the test Redis instance and flushes the test
// database. The test is skipped when Redis is not reachable, unless
// TEST_REDIS_REQUIRED is set, in which case it fails.
func SetupTestRedis(t testing.TB) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: TestRedisAddr(),
		DB:   testRedisDB(t),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if cerr := client.Close(); cerr != nil {
			t.Logf("close redis client after ping failure: %v", cerr)
		}
		if os.Getenv("TEST_REDIS_REQUIRED") != "" {
			t.Fatalf("Redis not available for testing at %s: %v", TestRedisAddr(), err)
		}
		t.Skipf("Redis not available for testing at %s: %v", TestRedisAddr(), err)
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("flush test redis db: %v", err)
	}

	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Logf("close redis client: %v", err)
		}
	})

	return client
}

// testRedisDB picks the Redis database index for tests. A dedicated index
// keeps FlushDB away from any local development data.
func testRedisDB(t testing.TB) int {
	v := os.Getenv("TEST_REDIS_DB")
	if v == "" {
		return defaultTestRedisDB
	}
	db, err := strconv.Atoi(v)
	if err != nil || db < 0 {
		t.Logf("invalid TEST_REDIS_DB=%q, using %d", v, defaultTestRedisDB)
		return defaultTestRedisDB
	}
	return db
}
