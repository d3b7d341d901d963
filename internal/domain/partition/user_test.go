package partition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnhub/partition-hub/internal/domain/partition"
)

func TestNewUser(t *testing.T) {
	u, err := partition.NewUser("7c9e6679-7425-40de-944b-e07fc1f90ae7", "alice", "beta-testers")
	require.NoError(t, err)

	assert.Equal(t, "7c9e6679-7425-40de-944b-e07fc1f90ae7", u.Key())
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, "beta-testers", u.Cohort)
}

func TestNewUser_InvalidID(t *testing.T) {
	_, err := partition.NewUser("not-a-uuid", "alice", "")

	assert.ErrorIs(t, err, partition.ErrInvalidID)
}
