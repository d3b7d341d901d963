// Package query contains the read-side application handlers.
package query

import (
	"context"

	"github.com/learnhub/partition-hub/internal/domain/partition"
)

// GetPartitionHandler loads a single partition from a course context.
type GetPartitionHandler struct {
	repo partition.Repository
}

// NewGetPartitionHandler creates a new handler.
func NewGetPartitionHandler(repo partition.Repository) *GetPartitionHandler {
	return &GetPartitionHandler{repo: repo}
}

// Execute returns the partition with the given id.
// Returns partition.ErrPartitionNotFound if no such partition exists.
func (h *GetPartitionHandler) Execute(ctx context.Context, courseKey string, id partition.PartitionID) (partition.UserPartition, error) {
	return h.repo.GetByID(ctx, courseKey, id)
}

// ListPartitionsHandler loads all partitions of a course context.
type ListPartitionsHandler struct {
	repo partition.Repository
}

// NewListPartitionsHandler creates a new handler.
func NewListPartitionsHandler(repo partition.Repository) *ListPartitionsHandler {
	return &ListPartitionsHandler{repo: repo}
}

// Execute returns the course's partitions ordered by id.
func (h *ListPartitionsHandler) Execute(ctx context.Context, courseKey string) ([]partition.UserPartition, error) {
	return h.repo.ListByCourse(ctx, courseKey)
}
