package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"main/model"
	"main/utils"

	"github.com/redis/go-redis/v9"
)

// AnalyticsCache keeps computed recurring stats in Redis so repeated
// dashboard loads do not re-aggregate completion history. Entries are
// dropped whenever a completion is written for the user.
type AnalyticsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAnalyticsCache(redisURL string, ttl time.Duration) (*AnalyticsCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &AnalyticsCache{client: client, ttl: ttl}, nil
}

func statsKey(userID string, start, end time.Time) string {
	return fmt.Sprintf("recurring_stats:%s:%s:%s", userID, model.DateKey(start), model.DateKey(end))
}

// Get returns the cached stats for a user and range, if present.
func (ac *AnalyticsCache) Get(ctx context.Context, userID string, start, end time.Time) (*model.RecurringStats, bool) {
	data, err := ac.client.Get(ctx, statsKey(userID, start, end)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		utils.TrackError("cache", "stats_get_failed")
		return nil, false
	}

	var stats model.RecurringStats
	if err := json.Unmarshal(data, &stats); err != nil {
		utils.TrackError("cache", "stats_decode_failed")
		return nil, false
	}
	return &stats, true
}

// Set caches computed stats for a user and range.
func (ac *AnalyticsCache) Set(ctx context.Context, userID string, start, end time.Time, stats *model.RecurringStats) error {
	if stats == nil {
		return fmt.Errorf("cannot cache nil stats")
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %v", err)
	}
	return ac.client.Set(ctx, statsKey(userID, start, end), data, ac.ttl).Err()
}

// Invalidate drops every cached range for the user.
func (ac *AnalyticsCache) Invalidate(ctx context.Context, userID string) error {
	pattern := fmt.Sprintf("recurring_stats:%s:*", userID)

	iter := ac.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) == 0 {
		return nil
	}
	if err := ac.client.Del(ctx, keys...).Err(); err != nil {
		return err
	}
	log.Printf("Invalidated %d cached stats entries for user %s", len(keys), userID)
	return nil
}
