package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/itsatony/sensordash/internal/config"
	"github.com/itsatony/sensordash/internal/models"
	"github.com/itsatony/sensordash/internal/repository"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

// SnapshotRepo caches the latest snapshot and publishes anomaly alerts.
type SnapshotRepo struct {
	client       *redis.Client
	key          string
	ttl          time.Duration
	alertChannel string
}

// NewClient opens and pings a redis connection.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	nuts.L.Infof("[Redis] Connected to %s/%d", cfg.Addr(), cfg.DB)
	return client, nil
}

func NewSnapshotRepo(client *redis.Client, cfg config.RedisConfig) *SnapshotRepo {
	return &SnapshotRepo{
		client:       client,
		key:          cfg.SnapshotKey,
		ttl:          cfg.SnapshotTTL,
		alertChannel: cfg.AlertChannel,
	}
}

func (r *SnapshotRepo) StoreSnapshot(ctx context.Context, snap models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return r.client.Set(ctx, r.key, data, r.ttl).Err()
}

func (r *SnapshotRepo) LoadSnapshot(ctx context.Context) (*models.Snapshot, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err == redis.Nil {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

// Notify publishes the alert on the configured channel.
func (r *SnapshotRepo) Notify(ctx context.Context, n models.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	return r.client.Publish(ctx, r.alertChannel, data).Err()
}

func (r *SnapshotRepo) Close() error {
	return r.client.Close()
}
