package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisQueue implements Queue over Redis pub/sub. Like the NATS backend it
// is deliberately ephemeral: no streams, no consumer groups.
type RedisQueue struct {
	client        *redis.Client
	subscriptions map[string]*redisSubscription
	mu            sync.RWMutex
}

type redisSubscription struct {
	pubsub *redis.PubSub
	cancel context.CancelFunc
}

// RedisConfig holds Redis connection options.
type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

// NewRedisQueue connects to a Redis server.
func NewRedisQueue(cfg RedisConfig) (*RedisQueue, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL %s: %w", cfg.URL, err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisQueue{
		client:        client,
		subscriptions: make(map[string]*redisSubscription),
	}, nil
}

// Publish publishes a message to a channel.
func (q *RedisQueue) Publish(ctx context.Context, subject string, data []byte) error {
	if err := q.client.Publish(ctx, subject, data).Err(); err != nil {
		return fmt.Errorf("failed to publish to channel %s: %w", subject, err)
	}
	return nil
}

// Subscribe subscribes to a channel with a message handler.
func (q *RedisQueue) Subscribe(subject string, handler MessageHandler) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, exists := q.subscriptions[subject]; exists {
		return fmt.Errorf("already subscribed to channel: %s", subject)
	}

	ctx, cancel := context.WithCancel(context.Background())
	pubsub := q.client.Subscribe(ctx, subject)

	// Wait for the subscription to be confirmed before returning.
	if _, err := pubsub.Receive(ctx); err != nil {
		cancel()
		_ = pubsub.Close()
		return fmt.Errorf("failed to subscribe to channel %s: %w", subject, err)
	}

	go func() {
		ch := pubsub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				_ = handler([]byte(msg.Payload))
			case <-ctx.Done():
				return
			}
		}
	}()

	q.subscriptions[subject] = &redisSubscription{pubsub: pubsub, cancel: cancel}
	return nil
}

// Unsubscribe unsubscribes from a channel.
func (q *RedisQueue) Unsubscribe(subject string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	sub, exists := q.subscriptions[subject]
	if !exists {
		return fmt.Errorf("not subscribed to channel: %s", subject)
	}
	delete(q.subscriptions, subject)

	sub.cancel()
	if err := sub.pubsub.Close(); err != nil {
		return fmt.Errorf("failed to close subscription for channel %s: %w", subject, err)
	}
	return nil
}

// Close closes all subscriptions and the client connection.
func (q *RedisQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for subject, sub := range q.subscriptions {
		sub.cancel()
		_ = sub.pubsub.Close()
		delete(q.subscriptions, subject)
	}
	return q.client.Close()
}
