package config

import (
	"main/utils"
	"time"
)

type DatabaseConfig struct {
	URI             string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	DatabaseName    string
	RetryWrites     bool
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URI:             utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		MaxPoolSize:     utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:     utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime: time.Duration(utils.GetEnvAsInt("MONGO_MAX_CONN_IDLE_TIME", 60)) * time.Second,
		DatabaseName:    utils.GetEnvAsString("MONGO_DB", "todos"),
		RetryWrites:     utils.GetEnvAsBool("MONGO_RETRY_WRITES", true),
	}
}

type CacheConfig struct {
	RedisURL string
	StatsTTL time.Duration
}

func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		RedisURL: utils.GetEnvAsString("REDIS_URL", "redis://localhost:6379/0"),
		StatsTTL: utils.GetEnvAsDuration("STATS_CACHE_TTL", 10*time.Minute),
	}
}

type SchedulerConfig struct {
	MissedSweepAt string
	// MissedSweepEvery adds an intra-day sweep on top of the nightly one.
	// Zero disables it.
	MissedSweepEvery time.Duration
}

func LoadSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		MissedSweepAt:    utils.GetEnvAsString("MISSED_SWEEP_AT", "00:05"),
		MissedSweepEvery: utils.GetEnvAsDuration("MISSED_SWEEP_EVERY", 0),
	}
}
