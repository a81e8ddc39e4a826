// Package redisstore keeps the version 1 node identifier in Redis so that
// every generator pointed at the same server shares one node.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Lzww0608/uuidshim/internal/logging"
)

var logger = logging.New("redisstore")

// Store implements uuidshim.NodeStore on top of a Redis client.
type Store struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix prepends prefix to every key.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithTTL expires the stored node after ttl. Zero keeps it forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// New wraps an existing client.
func New(client redis.Cmdable, opts ...Option) *Store {
	s := &Store{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dial builds a client from a redis:// URL, pings it and wraps it in a Store.
func Dial(ctx context.Context, url string, opts ...Option) (*Store, error) {
	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(redisOpts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping: %w", err)
	}

	logger.Sugar().Infow("built redis node store", "addr", redisOpts.Addr, "db", redisOpts.DB)

	return New(client, opts...), nil
}

// Get returns the node stored under key.
func (s *Store) Get(ctx context.Context, key string) (uint64, bool, error) {
	node, err := s.client.Get(ctx, s.prefix+key).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get node: %w", err)
	}
	return node, true, nil
}

// Set stores node under key as a decimal string.
func (s *Store) Set(ctx context.Context, key string, node uint64) error {
	if err := s.client.Set(ctx, s.prefix+key, strconv.FormatUint(node, 10), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set node: %w", err)
	}
	return nil
}
