package scheme_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnhub/partition-hub/internal/domain/partition"
	"github.com/learnhub/partition-hub/internal/scheme"
)

func newCohort() *scheme.Cohort {
	return scheme.NewCohort(&partition.Extension{Name: scheme.SchemeCohort})
}

func TestCohort_MatchesGroupByName(t *testing.T) {
	s := newCohort()
	p := buildPartition(t, s,
		partition.MustGroup(1, "staff"),
		partition.MustGroup(2, "beta-testers"),
	)

	g, err := s.GetGroupForUser(context.Background(), testUser(t, "beta-testers"), p)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, 2, g.ID().Int())
}

func TestCohort_NoCohort(t *testing.T) {
	s := newCohort()
	p := buildPartition(t, s, partition.MustGroup(1, "staff"))

	g, err := s.GetGroupForUser(context.Background(), testUser(t, ""), p)
	require.NoError(t, err)
	assert.Nil(t, g)
}

func TestCohort_NoMatchingGroup(t *testing.T) {
	s := newCohort()
	p := buildPartition(t, s, partition.MustGroup(1, "staff"))

	g, err := s.GetGroupForUser(context.Background(), testUser(t, "beta-testers"), p)
	require.NoError(t, err)
	assert.Nil(t, g)
}

func TestCohort_IsDynamic(t *testing.T) {
	s := newCohort()

	assert.True(t, s.IsDynamic())
	assert.Equal(t, scheme.SchemeCohort, s.Name())
}
