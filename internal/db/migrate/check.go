package dbmigrate

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

const defaultMigrationsDir = "internal/db/migrations"

// EnsureCurrent verifies the knowledge-base schema is on the newest
// version before any ingestion or search runs. With autoMigrate set,
// pending migrations are applied in place; otherwise they are reported
// as an error so the operator can run dbctl deliberately.
func EnsureCurrent(ctx context.Context, bunDB *bun.DB, dir string, autoMigrate bool) error {
	if dir == "" {
		dir = defaultMigrationsDir
	}
	manager, err := NewManager(bunDB, dir)
	if err != nil {
		return err
	}
	if err := manager.Init(ctx); err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}

	pending, err := manager.Pending(ctx)
	if err != nil {
		return fmt.Errorf("fetch migration status: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	if autoMigrate {
		if err := manager.MigrateUp(ctx); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		return nil
	}
	return fmt.Errorf("schema has pending migrations (%s): run 'dbctl migrate up' or set AUTO_MIGRATE=true",
		strings.Join(pending, ", "))
}
