package scheme_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/learnhub/partition-hub/internal/domain/partition"
)

// memStore is an in-memory partition.AssignmentStore for tests.
type memStore struct {
	mu          sync.Mutex
	assignments map[string]partition.GroupID
	saves       int
}

func newMemStore() *memStore {
	return &memStore{assignments: make(map[string]partition.GroupID)}
}

func assignmentKey(user partition.User, pid partition.PartitionID) string {
	return fmt.Sprintf("%s:%d", user.Key(), pid.Int())
}

func (s *memStore) Get(ctx context.Context, user partition.User, pid partition.PartitionID) (partition.GroupID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gid, ok := s.assignments[assignmentKey(user, pid)]
	return gid, ok, nil
}

func (s *memStore) Save(ctx context.Context, user partition.User, pid partition.PartitionID, gid partition.GroupID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[assignmentKey(user, pid)] = gid
	s.saves++
	return nil
}

func (s *memStore) Delete(ctx context.Context, user partition.User, pid partition.PartitionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.assignments, assignmentKey(user, pid))
	return nil
}

func testUser(t *testing.T, cohort string) partition.User {
	t.Helper()
	u, err := partition.NewUser("7c9e6679-7425-40de-944b-e07fc1f90ae7", "alice", cohort)
	require.NoError(t, err)
	return u
}

// buildPartition constructs a partition bound to an explicit scheme, bypassing
// the process-wide registry.
func buildPartition(t *testing.T, s partition.Scheme, groups ...partition.Group) partition.UserPartition {
	t.Helper()
	p, err := partition.NewUserPartition(10, "Experiment", "an experiment", groups, s)
	require.NoError(t, err)
	return p
}
