package repos

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"storefront/internal/notify"
)

// Signals carries storage-change notifications keyed by storage key. The
// payload is only the key; watchers re-read storage themselves.
type Signals interface {
	Notify(ctx context.Context, key string) error
	// Watch yields one value per change of key until ctx is done.
	Watch(ctx context.Context, key string) (<-chan struct{}, error)
}

// LocalSignals is the in-process implementation.
type LocalSignals struct {
	hub *notify.Hub[string]
}

func NewLocalSignals() *LocalSignals {
	return &LocalSignals{hub: notify.NewHub[string]()}
}

func (s *LocalSignals) Notify(_ context.Context, key string) error {
	s.hub.Publish(key)
	return nil
}

func (s *LocalSignals) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	ch, cancel := s.hub.Subscribe()
	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case k, ok := <-ch:
				if !ok {
					return
				}
				if k == key {
					poke(out)
				}
			}
		}
	}()
	return out, nil
}

// RedisSignals fans changes out over pub/sub so several server processes
// see each other's catalog edits.
type RedisSignals struct {
	client  *redis.Client
	channel string
}

func NewRedisSignals(client *redis.Client) *RedisSignals {
	return &RedisSignals{client: client, channel: redisPrefix + "storage"}
}

func (s *RedisSignals) Notify(ctx context.Context, key string) error {
	if err := s.client.Publish(ctx, s.channel, key).Err(); err != nil {
		return fmt.Errorf("redis publish failed: %w", err)
	}
	return nil
}

func (s *RedisSignals) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	ps := s.client.Subscribe(ctx, s.channel)
	// Wait for the subscription confirmation so no publish after Watch
	// returns is missed.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("redis subscribe failed: %w", err)
	}
	msgs := ps.Channel()
	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer ps.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-msgs:
				if !ok {
					return
				}
				if m.Payload == key {
					poke(out)
				}
			}
		}
	}()
	return out, nil
}

func poke(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
