package exclusion

import (
	"context"
	"crypto/tls"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dszilagyiques/CloneCoCo/coco"
	"github.com/dszilagyiques/CloneCoCo/ident"
)

// Source provides the set of module identifiers already in use at a
// destination.
type Source interface {
	// Fetch returns the identifiers to exclude from generation.
	Fetch(ctx context.Context) (ident.Set, error)
}

// Static is a fixed, caller-owned exclusion set.
type Static ident.Set

// Fetch returns a copy of the static set.
func (s Static) Fetch(context.Context) (ident.Set, error) {
	return ident.Set(s).Clone(), nil
}

// DefaultKey is the Redis set key holding reserved module identifiers.
const DefaultKey = "coco:module-ids"

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379")
	URL string

	// Key is the set key holding reserved identifiers. Defaults to
	// DefaultKey.
	Key string

	// TLS configuration for secure connections
	TLS *tls.Config

	// ConnectTimeout is the maximum time to wait for connection establishment
	ConnectTimeout time.Duration

	// ReadTimeout is the maximum time to wait for read operations
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait for write operations
	WriteTimeout time.Duration
}

// RedisStore shares reserved module identifiers between cloning runs through
// a Redis set.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed exclusion store with the given options.
func NewRedisStore(opts RedisOptions) (*RedisStore, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.Key == "" {
		opts.Key = DefaultKey
	}

	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 30 * time.Second
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = 5 * time.Second
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.TLSConfig = opts.TLS
	redisOpts.DialTimeout = opts.ConnectTimeout
	redisOpts.ReadTimeout = opts.ReadTimeout
	redisOpts.WriteTimeout = opts.WriteTimeout

	client := redis.NewClient(redisOpts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client, key: opts.Key}, nil
}

// Fetch returns every reserved identifier in the store.
func (s *RedisStore) Fetch(ctx context.Context) (ident.Set, error) {
	members, err := s.client.SMembers(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read exclusion set %s: %w", s.key, err)
	}

	set := ident.NewSet()
	for _, member := range members {
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("exclusion set %s holds a non-numeric identifier %q: %w", s.key, member, err)
		}
		set.Add(coco.ModuleID(id))
	}

	return set, nil
}

// Reserve records identifiers as in use at the destination. Call it after
// the destination accepted a creation payload using these identifiers.
func (s *RedisStore) Reserve(ctx context.Context, ids ...coco.ModuleID) error {
	if len(ids) == 0 {
		return nil
	}

	members := make([]any, len(ids))
	for i, id := range ids {
		members[i] = int64(id)
	}

	if err := s.client.SAdd(ctx, s.key, members...).Err(); err != nil {
		return fmt.Errorf("failed to reserve identifiers in %s: %w", s.key, err)
	}

	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
