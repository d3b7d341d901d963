package partition

import "context"

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// These interfaces define the storage contract for partitions and
// assignments. Implementations live in infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository stores user partitions per course context, keyed by
// (courseKey, partition id). Partitions are persisted in their versioned
// JSON form, so stored version 1 partitions keep loading.
type Repository interface {
	// Save creates or replaces a partition within a course context.
	Save(ctx context.Context, courseKey string, p UserPartition) error

	// GetByID returns the partition with the given id.
	// Returns ErrPartitionNotFound if no such partition exists.
	GetByID(ctx context.Context, courseKey string, id PartitionID) (UserPartition, error)

	// ListByCourse returns all partitions of a course context, ordered by id.
	ListByCourse(ctx context.Context, courseKey string) ([]UserPartition, error)

	// Delete removes a partition.
	// Returns ErrPartitionNotFound if no such partition exists.
	Delete(ctx context.Context, courseKey string, id PartitionID) error
}

// AssignmentStore persists the group a non-dynamic scheme picked for a user.
// Entries are durable state, not a cache: they have no expiry and are only
// replaced when a stored group no longer exists in its partition.
type AssignmentStore interface {
	// Get returns the stored group id for the user in the given partition.
	// The boolean reports whether an assignment exists.
	Get(ctx context.Context, user User, partitionID PartitionID) (GroupID, bool, error)

	// Save stores the user's group assignment, replacing any previous one.
	Save(ctx context.Context, user User, partitionID PartitionID, groupID GroupID) error

	// Delete removes the user's assignment for the given partition.
	Delete(ctx context.Context, user User, partitionID PartitionID) error
}
