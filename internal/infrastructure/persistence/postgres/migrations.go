package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Migration represents a database migration.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

// Migrate applies all pending migrations, tracking them in
// schema_migrations. Each migration runs in its own transaction.
func (c *Connection) Migrate(ctx context.Context) error {
	if _, err := c.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)
	`); err != nil {
		return fmt.Errorf("%w: create migrations table: %v", ErrMigrationFailed, err)
	}

	applied, err := c.appliedMigrations(ctx)
	if err != nil {
		return err
	}

	for _, mig := range migrations() {
		if _, ok := applied[mig.Version]; ok {
			continue
		}

		err := c.WithTx(ctx, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, mig.UpSQL); err != nil {
				return fmt.Errorf("execute migration %d: %w", mig.Version, err)
			}
			_, err := tx.Exec(ctx,
				"INSERT INTO schema_migrations (version, name) VALUES ($1, $2)",
				mig.Version, mig.Name)
			return err
		})
		if err != nil {
			return fmt.Errorf("%w: version %d: %v", ErrMigrationFailed, mig.Version, err)
		}
	}

	return nil
}

func (c *Connection) appliedMigrations(ctx context.Context) (map[int]time.Time, error) {
	rows, err := c.Query(ctx, "SELECT version, applied_at FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("%w: query applied migrations: %v", ErrMigrationFailed, err)
	}
	defer rows.Close()

	applied := make(map[int]time.Time)
	for rows.Next() {
		var version int
		var appliedAt time.Time
		if err := rows.Scan(&version, &appliedAt); err != nil {
			return nil, fmt.Errorf("%w: scan migration row: %v", ErrMigrationFailed, err)
		}
		applied[version] = appliedAt
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMigrationFailed, err)
	}

	return applied, nil
}

// migrations returns all embedded migrations in order.
func migrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_user_partitions",
			UpSQL: `
				CREATE TABLE user_partitions (
					course_key   TEXT    NOT NULL,
					partition_id INTEGER NOT NULL,
					data         JSONB   NOT NULL,
					updated_at   TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
					PRIMARY KEY (course_key, partition_id)
				);
				CREATE INDEX idx_user_partitions_course ON user_partitions (course_key);
			`,
			DownSQL: `DROP TABLE user_partitions;`,
		},
	}
}
