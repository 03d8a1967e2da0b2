package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DeliveryChannel is the redis channel every instance publishes deliveries on
const DeliveryChannel = "realtime:deliveries"

// Delivery is one encoded frame addressed to a room. An empty Room addresses every
// connection. Except names a session id that must not receive the frame.
type Delivery struct {
	Room   string          `json:"room,omitempty"`
	Except string          `json:"except,omitempty"`
	Frame  json.RawMessage `json:"frame"`
}

// Broker fans deliveries out to every gateway instance, including the publishing one
type Broker interface {
	Publish(ctx context.Context, d Delivery) error
	Subscribe(ctx context.Context, deliver func(Delivery)) error
	Close() error
}

// LocalBroker delivers in process. It is the broker for single instance deployments.
type LocalBroker struct {
	mu      sync.RWMutex
	deliver func(Delivery)
}

// NewLocalBroker returns a LocalBroker
func NewLocalBroker() *LocalBroker {
	return &LocalBroker{}
}

// Publish hands d straight to the subscriber
func (b *LocalBroker) Publish(_ context.Context, d Delivery) error {
	b.mu.RLock()
	deliver := b.deliver
	b.mu.RUnlock()
	if deliver != nil {
		deliver(d)
	}
	return nil
}

// Subscribe registers the delivery callback
func (b *LocalBroker) Subscribe(_ context.Context, deliver func(Delivery)) error {
	b.mu.Lock()
	b.deliver = deliver
	b.mu.Unlock()
	return nil
}

// Close is a no-op
func (b *LocalBroker) Close() error {
	return nil
}

// RedisBroker publishes deliveries on a redis channel so rooms span every api instance
type RedisBroker struct {
	rdb     *redis.Client
	channel string

	mu  sync.Mutex
	sub *redis.PubSub
}

// NewRedisBroker returns a RedisBroker on rdb
func NewRedisBroker(rdb *redis.Client) *RedisBroker {
	return &RedisBroker{rdb: rdb, channel: DeliveryChannel}
}

// NewRedisBrokerFromURL parses a redis:// url and pings the server
func NewRedisBrokerFromURL(ctx context.Context, url string) (*RedisBroker, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return NewRedisBroker(rdb), nil
}

// Publish sends d to every subscribed instance
func (b *RedisBroker) Publish(ctx context.Context, d Delivery) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, payload).Err()
}

// Subscribe waits for the subscription to be confirmed, then calls deliver for every
// delivery published by any instance until Close
func (b *RedisBroker) Subscribe(ctx context.Context, deliver func(Delivery)) error {
	sub := b.rdb.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("failed to subscribe to %s: %w", b.channel, err)
	}

	b.mu.Lock()
	b.sub = sub
	b.mu.Unlock()

	ch := sub.Channel()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				zap.S().Errorw("realtime redis subscriber panicked", "panic", r)
			}
		}()
		for msg := range ch {
			var d Delivery
			if err := json.Unmarshal([]byte(msg.Payload), &d); err != nil {
				zap.S().Warnw("dropping malformed realtime delivery", "error", err)
				continue
			}
			deliver(d)
		}
	}()
	return nil
}

// Close ends the subscription and the client
func (b *RedisBroker) Close() error {
	b.mu.Lock()
	sub := b.sub
	b.sub = nil
	b.mu.Unlock()

	if sub != nil {
		_ = sub.Close()
	}
	return b.rdb.Close()
}
