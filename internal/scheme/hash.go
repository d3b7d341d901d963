package scheme

import (
	"context"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/learnhub/partition-hub/internal/domain/partition"
)

// Hash buckets a user into a group by hashing (partition id, user id).
// The assignment is stable for a fixed group list without any stored state,
// which makes it suitable for experiments that must survive store resets.
// Adding or removing groups reshuffles the buckets.
type Hash struct {
	partition.BaseScheme
}

// NewHash creates a hash scheme.
func NewHash(ext *partition.Extension) *Hash {
	return &Hash{BaseScheme: partition.NewBaseScheme(ext)}
}

// IsDynamic reports true: the group is recomputed on every call.
func (s *Hash) IsDynamic() bool {
	return true
}

// GetGroupForUser returns the group whose bucket the user hashes into, or
// nil for a partition with no groups.
func (s *Hash) GetGroupForUser(ctx context.Context, user partition.User, p partition.UserPartition) (*partition.Group, error) {
	groups := p.Groups()
	if len(groups) == 0 {
		return nil, nil
	}

	sum := blake2b.Sum256(fmt.Appendf(nil, "%d:%s", p.ID(), user.Key()))
	bucket := binary.BigEndian.Uint64(sum[:8]) % uint64(len(groups))

	picked := groups[bucket]
	return &picked, nil
}
