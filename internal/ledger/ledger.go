// Package ledger remembers which payment webhook events were already applied
// so redeliveries can be acknowledged without touching the database.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Ledger interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Record(ctx context.Context, eventID string) error
}

const keyPrefix = "store-admin:webhook-event:"

type redisLedger struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisLedger(client redis.Cmdable, ttl time.Duration) Ledger {
	return &redisLedger{client: client, ttl: ttl}
}

// NewRedisClient parses a redis:// URL.
func NewRedisClient(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("ledger: parse redis url: %w", err)
	}
	opts.DialTimeout = 2 * time.Second
	opts.ReadTimeout = 500 * time.Millisecond
	opts.WriteTimeout = 500 * time.Millisecond

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ledger: ping redis: %w", err)
	}
	return client, nil
}

func (l *redisLedger) Seen(ctx context.Context, eventID string) (bool, error) {
	n, err := l.client.Exists(ctx, keyPrefix+eventID).Result()
	if err != nil {
		return false, fmt.Errorf("ledger: lookup %s: %w", eventID, err)
	}
	return n > 0, nil
}

func (l *redisLedger) Record(ctx context.Context, eventID string) error {
	stamp := time.Now().UTC().Format(time.RFC3339)
	if err := l.client.SetNX(ctx, keyPrefix+eventID, stamp, l.ttl).Err(); err != nil {
		return fmt.Errorf("ledger: record %s: %w", eventID, err)
	}
	return nil
}

type noopLedger struct{}

// NewNoopLedger never reports an event as seen.
func NewNoopLedger() Ledger {
	return noopLedger{}
}

func (noopLedger) Seen(context.Context, string) (bool, error) { return false, nil }

func (noopLedger) Record(context.Context, string) error { return nil }
