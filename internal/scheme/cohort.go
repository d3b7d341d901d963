package scheme

import (
	"context"

	"github.com/learnhub/partition-hub/internal/domain/partition"
)

// Cohort assigns a user to the group whose name equals the user's cohort.
// Assignment is dynamic: it follows cohort membership, which can change, so
// nothing is persisted.
type Cohort struct {
	partition.BaseScheme
}

// NewCohort creates a cohort scheme.
func NewCohort(ext *partition.Extension) *Cohort {
	return &Cohort{BaseScheme: partition.NewBaseScheme(ext)}
}

// IsDynamic reports true: the group is recomputed on every call.
func (s *Cohort) IsDynamic() bool {
	return true
}

// GetGroupForUser returns the first group named after the user's cohort, or
// nil when the user has no cohort or no group matches.
func (s *Cohort) GetGroupForUser(ctx context.Context, user partition.User, p partition.UserPartition) (*partition.Group, error) {
	if user.Cohort == "" {
		return nil, nil
	}
	for _, g := range p.Groups() {
		if g.Name() == user.Cohort {
			matched := g
			return &matched, nil
		}
	}
	return nil, nil
}
