package main

import (
	"context"
	"net"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startRedisDockerContainer(t *testing.T) (string, func()) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("Failed to start Dockertest: %+v", err)
	}

	err = pool.Client.Ping()
	if err != nil {
		t.Skipf("Could not connect to Docker: %+v", err)
	}

	resource, err := pool.Run("redis", "7.0.10-alpine", nil)
	if err != nil {
		t.Fatalf("Failed to start redis: %+v", err)
	}

	// build address the container is listening on
	addr := net.JoinHostPort("localhost", resource.GetPort("6379/tcp"))

	// ensure to wait for the container to be ready
	err = pool.Retry(func() error {
		client := redis.NewClient(&redis.Options{Addr: addr})
		defer client.Close()
		return client.Ping(context.Background()).Err()
	})
	if err != nil {
		t.Fatalf("Failed to ping Redis: %+v", err)
	}

	destroyFunc := func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Failed to purge resource: %+v", err)
		}
	}

	return addr, destroyFunc
}

func TestRedisJournal(t *testing.T) {
	addr, destroyFunc := startRedisDockerContainer(t)
	defer destroyFunc()
	rj := NewRedisJournal(zap.NewNop(), redis.NewClient(&redis.Options{Addr: addr}), "test:library:events")
	defer rj.Close()

	borrowed := Event{ID: "e:1", Kind: BookBorrowedEvent, Title: "1984", MemberID: 2, MemberName: "Bob", OccurredAt: "2023-07-02T00:00:00Z"}
	returned := Event{ID: "e:2", Kind: BookReturnedEvent, Title: "1984", MemberID: 2, MemberName: "Bob", OccurredAt: "2023-07-02T00:00:00Z"}

	t.Run("Empty Journal", func(t *testing.T) {
		events, err := rj.Events(context.Background())
		assert.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("Record Events", func(t *testing.T) {
		assert.NoError(t, rj.Record(context.Background(), borrowed))
		assert.NoError(t, rj.Record(context.Background(), returned))
	})

	t.Run("Get All Events", func(t *testing.T) {
		// ensures events come back in recording order.
		events, err := rj.Events(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []Event{borrowed, returned}, events)
	})
}
