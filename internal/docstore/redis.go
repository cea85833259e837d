package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// RedisFeed relays committed snapshots between instances that share a
// database. Each instance publishes its commits and delivers everyone
// else's to its local subscribers. Duplicates are harmless: subscribers
// drop versions they have already seen.
type RedisFeed struct {
	rdb    *redis.Client
	prefix string
	logger *slog.Logger
}

func NewRedisFeed(rdb *redis.Client, prefix string, logger *slog.Logger) *RedisFeed {
	return &RedisFeed{rdb: rdb, prefix: prefix, logger: logger}
}

func (f *RedisFeed) channel(collection, id string) string {
	return f.prefix + ":" + collection + ":" + id
}

func (f *RedisFeed) Publish(ctx context.Context, snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := f.rdb.Publish(ctx, f.channel(snap.Collection, snap.ID), payload).Err(); err != nil {
		return fmt.Errorf("publishing to redis: %w", err)
	}
	return nil
}

// Run delivers snapshots published by any instance until ctx is done.
func (f *RedisFeed) Run(ctx context.Context, deliver func(Snapshot)) error {
	sub := f.rdb.PSubscribe(ctx, f.prefix+":*")
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribing to redis: %w", err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var snap Snapshot
			if err := json.Unmarshal([]byte(msg.Payload), &snap); err != nil {
				f.logger.Warn("dropping malformed snapshot", "channel", msg.Channel, "error", err)
				continue
			}
			deliver(snap)
		}
	}
}
