package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/learnhub/partition-hub/internal/domain/partition"
)

// PartitionRepository implements partition.Repository on PostgreSQL.
// Partitions are stored as their versioned JSON form in a JSONB column, the
// same shape ToJSON produces, so rows round-trip through PartitionFromJSON.
type PartitionRepository struct {
	conn *Connection
}

// NewPartitionRepository creates a new partition repository.
func NewPartitionRepository(conn *Connection) *PartitionRepository {
	return &PartitionRepository{conn: conn}
}

// Save creates or replaces a partition within a course context.
func (r *PartitionRepository) Save(ctx context.Context, courseKey string, p partition.UserPartition) error {
	data, err := json.Marshal(p.ToJSON())
	if err != nil {
		return fmt.Errorf("postgres: marshal partition %d: %w", p.ID(), err)
	}

	_, err = r.conn.Exec(ctx, `
		INSERT INTO user_partitions (course_key, partition_id, data, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (course_key, partition_id)
		DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`, courseKey, p.ID().Int(), data)
	if err != nil {
		return fmt.Errorf("postgres: save partition %d: %w", p.ID(), err)
	}
	return nil
}

// GetByID returns the partition with the given id.
// Returns partition.ErrPartitionNotFound if no such partition exists.
func (r *PartitionRepository) GetByID(ctx context.Context, courseKey string, id partition.PartitionID) (partition.UserPartition, error) {
	var data []byte
	err := r.conn.QueryRow(ctx, `
		SELECT data FROM user_partitions
		WHERE course_key = $1 AND partition_id = $2
	`, courseKey, id.Int()).Scan(&data)
	if err != nil {
		if IsNoRows(err) {
			return partition.UserPartition{}, fmt.Errorf("%w: %d in course %q", partition.ErrPartitionNotFound, id, courseKey)
		}
		return partition.UserPartition{}, fmt.Errorf("postgres: get partition %d: %w", id, err)
	}

	return decodePartition(data)
}

// ListByCourse returns all partitions of a course context, ordered by id.
func (r *PartitionRepository) ListByCourse(ctx context.Context, courseKey string) ([]partition.UserPartition, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT data FROM user_partitions
		WHERE course_key = $1
		ORDER BY partition_id
	`, courseKey)
	if err != nil {
		return nil, fmt.Errorf("postgres: list partitions for %q: %w", courseKey, err)
	}
	defer rows.Close()

	var partitions []partition.UserPartition
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("postgres: scan partition row: %w", err)
		}
		p, err := decodePartition(data)
		if err != nil {
			return nil, err
		}
		partitions = append(partitions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list partitions for %q: %w", courseKey, err)
	}

	return partitions, nil
}

// Delete removes a partition.
// Returns partition.ErrPartitionNotFound if no such partition exists.
func (r *PartitionRepository) Delete(ctx context.Context, courseKey string, id partition.PartitionID) error {
	tag, err := r.conn.Exec(ctx, `
		DELETE FROM user_partitions
		WHERE course_key = $1 AND partition_id = $2
	`, courseKey, id.Int())
	if err != nil {
		return fmt.Errorf("postgres: delete partition %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %d in course %q", partition.ErrPartitionNotFound, id, courseKey)
	}
	return nil
}

// decodePartition turns a stored JSONB document back into a UserPartition,
// resolving its scheme through the process registry.
func decodePartition(data []byte) (partition.UserPartition, error) {
	var value map[string]any
	if err := json.Unmarshal(data, &value); err != nil {
		return partition.UserPartition{}, fmt.Errorf("postgres: unmarshal partition: %w", err)
	}
	return partition.PartitionFromJSON(value)
}
