package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type redisJournal struct {
	logger *zap.Logger
	client *redis.Client
	key    string
}

// NewRedisJournal provides an instance of redis-based event journal.
// Events are pushed to the tail of the list stored at key.
func NewRedisJournal(logger *zap.Logger, client *redis.Client, key string) Journaler {
	return &redisJournal{
		logger: logger,
		client: client,
		key:    key,
	}
}

// GetRedisClient provides a ready to use redis client.
func GetRedisClient(config *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", config.Redis.Host, config.Redis.Port),
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
		PoolSize:     config.Redis.PoolSize,
		PoolTimeout:  config.Redis.PoolTimeout,
		Password:     config.Redis.Password,
		Username:     config.Redis.Username,
		DB:           config.Redis.DatabaseIndex,
	})

	// test connection.
	if pong, err := client.Ping(context.Background()).Result(); pong != "PONG" || err != nil {
		client.Close()
		return nil, fmt.Errorf("test connection failed: %v", err)
	}
	return client, nil
}

// Record appends an event to the journal list.
func (rj *redisJournal) Record(ctx context.Context, event Event) error {
	eventBytes, err := event.ToJSON()
	if err != nil {
		return err
	}
	return rj.client.RPush(ctx, rj.key, eventBytes).Err()
}

// Events retrieves every recorded event in recording order.
func (rj *redisJournal) Events(ctx context.Context) ([]Event, error) {
	items, err := rj.client.LRange(ctx, rj.key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	events := []Event{}
	for _, item := range items {
		event, err := EventFromJSON([]byte(item))
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// Close releases the underlying redis connections.
func (rj *redisJournal) Close() error {
	return rj.client.Close()
}
