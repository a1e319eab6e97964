package stats

import (
	"context"
	"fmt"
	"loadbearer/pkg/models"
	"loadbearer/pkg/utils/logger"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStatsRecorder keeps per-path counters in Redis, so several load-bearer
// instances behind one balancer can share an aggregate view. Recording fails
// open: a backend error is logged and the request proceeds.
type RedisStatsRecorder struct {
	client    *redis.Client
	namespace string
	logger    *logger.Logger
	ctx       context.Context
}

func NewRedisStatsRecorder(config *models.RedisConfig, logger *logger.Logger) *RedisStatsRecorder {
	db := 0
	if config.DB != nil {
		db = *config.DB
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Address,
		Password: config.Password,
		DB:       db,
	})

	namespace := config.KeyNamespace
	if namespace == "" {
		namespace = "loadbearer:stats:"
	} else if namespace[len(namespace)-1] != ':' {
		namespace += ":"
	}

	return &RedisStatsRecorder{
		client:    client,
		namespace: namespace,
		logger:    logger,
		ctx:       context.Background(),
	}
}

func (r *RedisStatsRecorder) Record(path string, wait time.Duration) {
	key := r.key(path)

	pipe := r.client.Pipeline()
	pipe.HIncrBy(r.ctx, key, "requests", 1)
	pipe.HIncrBy(r.ctx, key, "waitedMs", wait.Milliseconds())
	if _, err := pipe.Exec(r.ctx); err != nil {
		r.logger.Error(fmt.Sprintf("Failed to record stats for %s: %v", path, err))
	}
}

func (r *RedisStatsRecorder) Snapshot() map[string]PathStats {
	out := make(map[string]PathStats)

	iter := r.client.Scan(r.ctx, 0, r.namespace+"*", 0).Iterator()
	for iter.Next(r.ctx) {
		key := iter.Val()

		fields, err := r.client.HGetAll(r.ctx, key).Result()
		if err != nil {
			r.logger.Error(fmt.Sprintf("Failed to read stats key %s: %v", key, err))
			continue
		}

		var entry PathStats
		entry.Requests, _ = strconv.ParseInt(fields["requests"], 10, 64)
		entry.WaitedMs, _ = strconv.ParseInt(fields["waitedMs"], 10, 64)
		out[strings.TrimPrefix(key, r.namespace)] = entry
	}
	if err := iter.Err(); err != nil {
		r.logger.Error(fmt.Sprintf("Failed to scan stats keys: %v", err))
	}

	return out
}

func (r *RedisStatsRecorder) Health() error {
	return r.client.Ping(r.ctx).Err()
}

func (r *RedisStatsRecorder) Close() error {
	return r.client.Close()
}

func (r *RedisStatsRecorder) key(path string) string {
	return r.namespace + path
}
