package dbmigrate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// Manager drives the knowledge-base schema migrations. Migrations are
// plain SQL files discovered from a directory (or any fs.FS), applied
// through bun's migrator so the applied set is tracked in the database.
type Manager struct {
	migrator *migrate.Migrator
}

func NewManager(db *bun.DB, dir string) (*Manager, error) {
	if dir == "" {
		return nil, errors.New("migrations directory is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve migrations dir: %w", err)
	}
	return NewManagerWithFS(db, os.DirFS(abs))
}

func NewManagerWithFS(db *bun.DB, fsys fs.FS) (*Manager, error) {
	switch {
	case db == nil:
		return nil, errors.New("database is required")
	case fsys == nil:
		return nil, errors.New("migrations filesystem is required")
	}

	set := migrate.NewMigrations()
	if err := set.Discover(fsys); err != nil {
		return nil, fmt.Errorf("discover migrations: %w", err)
	}
	return &Manager{migrator: migrate.NewMigrator(db, set)}, nil
}

// Init creates bun's migration bookkeeping tables.
func (m *Manager) Init(ctx context.Context) error {
	return m.migrator.Init(ctx)
}

// MigrateUp applies every pending migration.
func (m *Manager) MigrateUp(ctx context.Context) error {
	_, err := m.migrator.Migrate(ctx)
	return err
}

// MigrateDownSteps rolls back the given number of applied migration
// groups; steps <= 0 rolls back everything.
func (m *Manager) MigrateDownSteps(ctx context.Context, steps int) error {
	applied, err := m.appliedCount(ctx)
	if err != nil {
		return err
	}
	if applied == 0 {
		return nil
	}
	if steps <= 0 || steps > applied {
		steps = applied
	}
	for ; steps > 0; steps-- {
		if _, err := m.migrator.Rollback(ctx); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDownTo rolls back until target is the newest applied migration.
func (m *Manager) MigrateDownTo(ctx context.Context, target string) error {
	if target == "" {
		return errors.New("target version is required")
	}
	status, err := m.migrator.MigrationsWithStatus(ctx)
	if err != nil {
		return err
	}

	known := false
	steps := 0
	for _, mig := range status {
		if mig.Name == target {
			known = true
		}
		if mig.IsApplied() && mig.Name > target {
			steps++
		}
	}
	if !known {
		return fmt.Errorf("migration %s not found", target)
	}
	if steps == 0 {
		return nil
	}
	return m.MigrateDownSteps(ctx, steps)
}

// Status returns every known migration with its applied state.
func (m *Manager) Status(ctx context.Context) (migrate.MigrationSlice, error) {
	return m.migrator.MigrationsWithStatus(ctx)
}

// Pending returns the names of migrations not yet applied, in order.
func (m *Manager) Pending(ctx context.Context) ([]string, error) {
	status, err := m.Status(ctx)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, mig := range status {
		if !mig.IsApplied() {
			names = append(names, fmt.Sprintf("%s_%s", mig.Name, mig.Comment))
		}
	}
	return names, nil
}

func (m *Manager) appliedCount(ctx context.Context) (int, error) {
	status, err := m.migrator.MigrationsWithStatus(ctx)
	if err != nil {
		return 0, err
	}
	return len(status.Applied()), nil
}
