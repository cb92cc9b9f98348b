package data

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

const scoreChannel = "dispatch:scores"

// MustRedis connects to Redis or exits.
func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// PublishScoreEvent notifies subscribers that a ranking was computed, so
// dashboards can refresh without polling.
func PublishScoreEvent(ctx context.Context, rdb *redis.Client, payload map[string]interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return rdb.Publish(ctx, scoreChannel, raw).Err()
}
