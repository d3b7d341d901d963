package scheme

import (
	"context"
	"math/rand"

	"github.com/learnhub/partition-hub/internal/domain/partition"
)

// Random assigns a user to a uniformly picked group and persists the pick.
// Subsequent calls return the stored group as long as it still exists in the
// partition; a stale assignment (group removed from the partition) is
// replaced by a fresh pick.
type Random struct {
	partition.BaseScheme
	store partition.AssignmentStore
}

// NewRandom creates a random scheme backed by the given assignment store.
func NewRandom(ext *partition.Extension, store partition.AssignmentStore) *Random {
	return &Random{
		BaseScheme: partition.NewBaseScheme(ext),
		store:      store,
	}
}

// GetGroupForUser returns the user's persisted group, assigning one first if
// needed. Returns nil for a partition with no groups.
func (s *Random) GetGroupForUser(ctx context.Context, user partition.User, p partition.UserPartition) (*partition.Group, error) {
	groups := p.Groups()
	if len(groups) == 0 {
		return nil, nil
	}

	gid, ok, err := s.store.Get(ctx, user, p.ID())
	if err != nil {
		return nil, err
	}
	if ok {
		if g := p.GetGroup(gid); g != nil {
			return g, nil
		}
		// Stored group no longer exists in the partition; reassign below.
	}

	picked := groups[rand.Intn(len(groups))]
	if err := s.store.Save(ctx, user, p.ID(), picked.ID()); err != nil {
		return nil, err
	}
	return &picked, nil
}
