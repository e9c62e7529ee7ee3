package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/daytonschwaninger63-ctrl/Cbb-Betting-bot/internal/analysis"
)

const (
	// edgeStream carries per-game edge alerts for downstream consumers
	// (bot notifiers, dashboards).
	edgeStream = "edges.alerts.basketball_ncaab"

	// snapshotStream carries whole-run summaries.
	snapshotStream = "edges.snapshots.basketball_ncaab"
)

// RedisPublisher publishes analysis output to Redis streams.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a stream publisher with its own connection.
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisPublisher{
		client: client,
	}, nil
}

// NewRedisPublisherFromClient creates a stream publisher over an existing
// client (shared with the cache).
func NewRedisPublisherFromClient(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Close closes the Redis connection.
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// PublishEdgeAlert publishes one notable per-game result to the alert stream.
func (rp *RedisPublisher) PublishEdgeAlert(ctx context.Context, result analysis.MatchResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: edgeStream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}

// PublishSnapshot publishes a whole-run summary to the snapshot stream.
func (rp *RedisPublisher) PublishSnapshot(ctx context.Context, snapshot *analysis.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: snapshotStream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
