package command_test

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnhub/partition-hub/internal/application/command"
	"github.com/learnhub/partition-hub/internal/domain/partition"
	"github.com/learnhub/partition-hub/pkg/logger"
)

// fakeRepo is an in-memory partition.Repository keyed by course and id.
type fakeRepo struct {
	partitions map[string]partition.UserPartition
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{partitions: make(map[string]partition.UserPartition)}
}

func repoKey(courseKey string, id partition.PartitionID) string {
	return fmt.Sprintf("%s/%d", courseKey, id.Int())
}

func (r *fakeRepo) Save(ctx context.Context, courseKey string, p partition.UserPartition) error {
	r.partitions[repoKey(courseKey, p.ID())] = p
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, courseKey string, id partition.PartitionID) (partition.UserPartition, error) {
	p, ok := r.partitions[repoKey(courseKey, id)]
	if !ok {
		return partition.UserPartition{}, fmt.Errorf("%w: partition %d in course %q", partition.ErrPartitionNotFound, id.Int(), courseKey)
	}
	return p, nil
}

func (r *fakeRepo) ListByCourse(ctx context.Context, courseKey string) ([]partition.UserPartition, error) {
	var out []partition.UserPartition
	for _, p := range r.partitions {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeRepo) Delete(ctx context.Context, courseKey string, id partition.PartitionID) error {
	key := repoKey(courseKey, id)
	if _, ok := r.partitions[key]; !ok {
		return fmt.Errorf("%w: partition %d in course %q", partition.ErrPartitionNotFound, id.Int(), courseKey)
	}
	delete(r.partitions, key)
	return nil
}

// cohortScheme resolves groups by matching the user's cohort to a group name.
type cohortScheme struct {
	partition.BaseScheme
}

func (s *cohortScheme) IsDynamic() bool { return true }

func (s *cohortScheme) GetGroupForUser(ctx context.Context, user partition.User, p partition.UserPartition) (*partition.Group, error) {
	for _, g := range p.Groups() {
		if g.Name() == user.Cohort {
			matched := g
			return &matched, nil
		}
	}
	return nil, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Output: io.Discard, Level: logger.LevelError})
}

func testPartition(t *testing.T) partition.UserPartition {
	t.Helper()
	p, err := partition.NewUserPartition(10, "Experiment", "an experiment",
		[]partition.Group{
			partition.MustGroup(1, "staff"),
			partition.MustGroup(2, "beta-testers"),
		},
		&cohortScheme{},
	)
	require.NoError(t, err)
	return p
}

func TestSavePartitionHandler(t *testing.T) {
	repo := newFakeRepo()
	h := command.NewSavePartitionHandler(repo, testLogger())
	p := testPartition(t)

	require.NoError(t, h.Execute(context.Background(), "course-v1:LX+GO1+2026", p))

	got, err := repo.GetByID(context.Background(), "course-v1:LX+GO1+2026", p.ID())
	require.NoError(t, err)
	assert.True(t, p.Equal(got))
}

func TestSavePartitionHandler_EmptyCourseKey(t *testing.T) {
	h := command.NewSavePartitionHandler(newFakeRepo(), testLogger())

	err := h.Execute(context.Background(), "", testPartition(t))
	assert.ErrorIs(t, err, partition.ErrMalformedValue)
}

func TestDeletePartitionHandler(t *testing.T) {
	repo := newFakeRepo()
	p := testPartition(t)
	require.NoError(t, repo.Save(context.Background(), "course-v1:LX+GO1+2026", p))

	h := command.NewDeletePartitionHandler(repo, testLogger())
	require.NoError(t, h.Execute(context.Background(), "course-v1:LX+GO1+2026", p.ID()))

	_, err := repo.GetByID(context.Background(), "course-v1:LX+GO1+2026", p.ID())
	assert.ErrorIs(t, err, partition.ErrPartitionNotFound)
}

func TestDeletePartitionHandler_NotFound(t *testing.T) {
	h := command.NewDeletePartitionHandler(newFakeRepo(), testLogger())

	err := h.Execute(context.Background(), "course-v1:LX+GO1+2026", partition.PartitionID(404))
	assert.ErrorIs(t, err, partition.ErrPartitionNotFound)
}

func TestAssignGroupHandler(t *testing.T) {
	repo := newFakeRepo()
	p := testPartition(t)
	require.NoError(t, repo.Save(context.Background(), "course-v1:LX+GO1+2026", p))

	user, err := partition.NewUser("7c9e6679-7425-40de-944b-e07fc1f90ae7", "alice", "beta-testers")
	require.NoError(t, err)

	h := command.NewAssignGroupHandler(repo, testLogger())
	g, err := h.Execute(context.Background(), "course-v1:LX+GO1+2026", p.ID(), user)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, 2, g.ID().Int())
}

func TestAssignGroupHandler_NoGroup(t *testing.T) {
	repo := newFakeRepo()
	p := testPartition(t)
	require.NoError(t, repo.Save(context.Background(), "course-v1:LX+GO1+2026", p))

	user, err := partition.NewUser("7c9e6679-7425-40de-944b-e07fc1f90ae7", "bob", "")
	require.NoError(t, err)

	h := command.NewAssignGroupHandler(repo, testLogger())
	g, err := h.Execute(context.Background(), "course-v1:LX+GO1+2026", p.ID(), user)
	require.NoError(t, err)
	assert.Nil(t, g)
}

func TestAssignGroupHandler_PartitionNotFound(t *testing.T) {
	user, err := partition.NewUser("7c9e6679-7425-40de-944b-e07fc1f90ae7", "alice", "staff")
	require.NoError(t, err)

	h := command.NewAssignGroupHandler(newFakeRepo(), testLogger())
	_, err = h.Execute(context.Background(), "course-v1:LX+GO1+2026", partition.PartitionID(404), user)
	assert.ErrorIs(t, err, partition.ErrPartitionNotFound)
}
