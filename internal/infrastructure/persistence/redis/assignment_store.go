// Package redis implements the Redis-backed assignment store for the
// partition hub. Assignments are durable per-user state written by
// non-dynamic schemes; keys carry no TTL and are only replaced when a stored
// group disappears from its partition.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/learnhub/partition-hub/internal/domain/partition"
)

// PrefixAssignment namespaces assignment keys.
// Full key shape: assignment:<partition id>:<user uuid>.
const PrefixAssignment = "assignment:"

// ErrStoreConnection is returned when the Redis connection fails.
var ErrStoreConnection = errors.New("assignmentstore: connection failed")

// Config holds Redis connection configuration.
type Config struct {
	// Host is the Redis server hostname.
	Host string

	// Port is the Redis server port.
	Port int

	// Password is the Redis authentication password (empty if no auth).
	Password string

	// DB is the Redis database number (0-15).
	DB int

	// PoolSize is the maximum number of socket connections.
	PoolSize int

	// DialTimeout is the timeout for establishing new connections.
	DialTimeout time.Duration

	// ReadTimeout is the timeout for socket reads.
	ReadTimeout time.Duration

	// WriteTimeout is the timeout for socket writes.
	WriteTimeout time.Duration
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         6379,
		DB:           0,
		PoolSize:     10,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// Addr returns the Redis address in "host:port" format.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AssignmentStore implements partition.AssignmentStore on Redis.
type AssignmentStore struct {
	client *redis.Client
}

// NewAssignmentStore creates a store and verifies the connection.
func NewAssignmentStore(cfg Config) (*AssignmentStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreConnection, err)
	}

	return &AssignmentStore{client: client}, nil
}

// Close closes the Redis connection.
func (s *AssignmentStore) Close() error {
	return s.client.Close()
}

// Ping checks if Redis is reachable.
func (s *AssignmentStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Get returns the stored group id for the user in the given partition.
func (s *AssignmentStore) Get(ctx context.Context, user partition.User, partitionID partition.PartitionID) (partition.GroupID, bool, error) {
	val, err := s.client.Get(ctx, assignmentKey(user, partitionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("assignmentstore: get: %w", err)
	}

	id, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("assignmentstore: corrupt assignment %q: %w", val, err)
	}
	return partition.GroupID(id), true, nil
}

// Save stores the user's group assignment with no expiry.
func (s *AssignmentStore) Save(ctx context.Context, user partition.User, partitionID partition.PartitionID, groupID partition.GroupID) error {
	err := s.client.Set(ctx, assignmentKey(user, partitionID), strconv.Itoa(groupID.Int()), 0).Err()
	if err != nil {
		return fmt.Errorf("assignmentstore: save: %w", err)
	}
	return nil
}

// Delete removes the user's assignment for the given partition.
func (s *AssignmentStore) Delete(ctx context.Context, user partition.User, partitionID partition.PartitionID) error {
	if err := s.client.Del(ctx, assignmentKey(user, partitionID)).Err(); err != nil {
		return fmt.Errorf("assignmentstore: delete: %w", err)
	}
	return nil
}

// assignmentKey builds the Redis key for one user's assignment in one
// partition.
func assignmentKey(user partition.User, partitionID partition.PartitionID) string {
	return PrefixAssignment + partitionID.String() + ":" + user.Key()
}
