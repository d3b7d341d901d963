// Package command contains the write-side application handlers: thin
// orchestration over the partition domain and its repositories.
package command

import (
	"context"
	"fmt"

	"github.com/learnhub/partition-hub/internal/domain/partition"
	"github.com/learnhub/partition-hub/pkg/logger"
)

// SavePartitionHandler persists a partition within a course context.
type SavePartitionHandler struct {
	repo partition.Repository
	log  *logger.Logger
}

// NewSavePartitionHandler creates a new handler.
func NewSavePartitionHandler(repo partition.Repository, log *logger.Logger) *SavePartitionHandler {
	return &SavePartitionHandler{repo: repo, log: log}
}

// Execute saves the partition. The course key must be non-empty; the
// partition is assumed valid by construction.
func (h *SavePartitionHandler) Execute(ctx context.Context, courseKey string, p partition.UserPartition) error {
	if courseKey == "" {
		return fmt.Errorf("%w: course key cannot be empty", partition.ErrMalformedValue)
	}

	if err := h.repo.Save(ctx, courseKey, p); err != nil {
		return err
	}

	h.log.Info("partition saved",
		logger.CourseKey(courseKey),
		logger.PartitionID(p.ID().Int()),
		logger.SchemeName(p.Scheme().Name()),
		logger.Int("groups", len(p.Groups())),
	)
	return nil
}

// DeletePartitionHandler removes a partition from a course context.
type DeletePartitionHandler struct {
	repo partition.Repository
	log  *logger.Logger
}

// NewDeletePartitionHandler creates a new handler.
func NewDeletePartitionHandler(repo partition.Repository, log *logger.Logger) *DeletePartitionHandler {
	return &DeletePartitionHandler{repo: repo, log: log}
}

// Execute deletes the partition.
// Returns partition.ErrPartitionNotFound if no such partition exists.
func (h *DeletePartitionHandler) Execute(ctx context.Context, courseKey string, id partition.PartitionID) error {
	if err := h.repo.Delete(ctx, courseKey, id); err != nil {
		return err
	}

	h.log.Info("partition deleted",
		logger.CourseKey(courseKey),
		logger.PartitionID(id.Int()),
	)
	return nil
}
