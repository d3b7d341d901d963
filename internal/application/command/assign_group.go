package command

import (
	"context"

	"github.com/learnhub/partition-hub/internal/domain/partition"
	"github.com/learnhub/partition-hub/pkg/logger"
)

// AssignGroupHandler resolves the group a user belongs to within a stored
// partition by running the partition's scheme. For non-dynamic schemes the
// scheme itself persists the pick, so repeated calls are stable.
type AssignGroupHandler struct {
	repo partition.Repository
	log  *logger.Logger
}

// NewAssignGroupHandler creates a new handler.
func NewAssignGroupHandler(repo partition.Repository, log *logger.Logger) *AssignGroupHandler {
	return &AssignGroupHandler{repo: repo, log: log}
}

// Execute loads the partition and asks its scheme for the user's group.
// Returns nil without error when the scheme assigns no group.
func (h *AssignGroupHandler) Execute(ctx context.Context, courseKey string, id partition.PartitionID, user partition.User) (*partition.Group, error) {
	p, err := h.repo.GetByID(ctx, courseKey, id)
	if err != nil {
		return nil, err
	}

	group, err := p.Scheme().GetGroupForUser(ctx, user, p)
	if err != nil {
		return nil, err
	}

	if group == nil {
		h.log.Debug("no group for user",
			logger.CourseKey(courseKey),
			logger.PartitionID(id.Int()),
			logger.UserID(user.Key()),
			logger.SchemeName(p.Scheme().Name()),
		)
		return nil, nil
	}

	h.log.Debug("group resolved",
		logger.CourseKey(courseKey),
		logger.PartitionID(id.Int()),
		logger.UserID(user.Key()),
		logger.SchemeName(p.Scheme().Name()),
		logger.GroupID(group.ID().Int()),
	)
	return group, nil
}
