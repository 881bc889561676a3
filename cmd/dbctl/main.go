package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/uptrace/bun"

	"github.com/nrivera/botkb/internal/config"
	"github.com/nrivera/botkb/internal/db"
	dbmigrate "github.com/nrivera/botkb/internal/db/migrate"
)

func main() {
	root := newRootCommand()
	config.Init(root)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dbctl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "dbctl",
		Short: "Manage the knowledge base schema",
	}
	root.PersistentFlags().String("dsn", "", "PostgreSQL DSN (overrides POSTGRES_URL)")
	root.PersistentFlags().String("migrations", "internal/db/migrations", "Migrations directory")
	_ = viper.BindPFlag("postgres_url", root.PersistentFlags().Lookup("dsn"))
	_ = viper.BindPFlag("db_migrations_dir", root.PersistentFlags().Lookup("migrations"))

	root.AddCommand(
		newInitCommand(),
		newMigrateCommand(),
		newStatusCommand(),
		newVerifyCommand(),
		newRecreateCommand(),
	)
	return root
}

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create migration bookkeeping tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(cmd.Context(), func(ctx context.Context, m *dbmigrate.Manager, _ *bun.DB) error {
				return m.Init(ctx)
			})
		},
	}
}

func newMigrateCommand() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(cmd.Context(), func(ctx context.Context, m *dbmigrate.Manager, _ *bun.DB) error {
				return m.MigrateUp(ctx)
			})
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			target, _ := cmd.Flags().GetString("to")
			return withManager(cmd.Context(), func(ctx context.Context, m *dbmigrate.Manager, _ *bun.DB) error {
				if target != "" {
					return m.MigrateDownTo(ctx, target)
				}
				return m.MigrateDownSteps(ctx, steps)
			})
		},
	}
	down.Flags().Int("steps", 1, "Number of migrations to roll back (0 = all)")
	down.Flags().String("to", "", "Roll back to the specified migration (inclusive)")

	migrate.AddCommand(up, down)
	return migrate
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "status",
		Short:         "Show applied and pending migrations",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(cmd.Context(), func(ctx context.Context, m *dbmigrate.Manager, _ *bun.DB) error {
				status, err := m.Status(ctx)
				if err != nil {
					return err
				}
				for _, mig := range status {
					state := "pending"
					if mig.IsApplied() {
						state = "applied"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s_%s\t%s\n", mig.Name, mig.Comment, state)
				}
				return nil
			})
		},
	}
}

func newVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "verify",
		Short:         "Ensure the schema is on the latest version",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(cmd.Context(), func(ctx context.Context, _ *dbmigrate.Manager, bunDB *bun.DB) error {
				return dbmigrate.EnsureCurrent(ctx, bunDB, migrationsDir(), false)
			})
		},
	}
}

func newRecreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recreate",
		Short: "Drop and recreate the knowledge base tables (destructive)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.ToLower(os.Getenv("DB_ALLOW_DESTRUCTIVE")) != "yes" {
				return errors.New("DB_ALLOW_DESTRUCTIVE=yes must be set for recreate")
			}
			return withManager(cmd.Context(), func(ctx context.Context, _ *dbmigrate.Manager, bunDB *bun.DB) error {
				if _, err := bunDB.ExecContext(ctx, `DROP TABLE IF EXISTS knowledge_chunks CASCADE`); err != nil {
					return err
				}
				return dbmigrate.EnsureCurrent(ctx, bunDB, migrationsDir(), true)
			})
		},
	}
}

func withManager(ctx context.Context, fn func(context.Context, *dbmigrate.Manager, *bun.DB) error) error {
	dsn := viper.GetString("postgres_url")
	if dsn == "" {
		dsn = config.PostgresURL()
	}
	if dsn == "" {
		return errors.New("postgres DSN must be provided via flag or environment")
	}

	database, err := db.NewDatabase(db.Config{DSN: dsn, AppName: "dbctl"})
	if err != nil {
		return err
	}
	defer database.Close()

	manager, err := dbmigrate.NewManager(database.Bun(), migrationsDir())
	if err != nil {
		return err
	}
	return fn(ctx, manager, database.Bun())
}

func migrationsDir() string {
	if dir := viper.GetString("db_migrations_dir"); dir != "" {
		return dir
	}
	return "internal/db/migrations"
}
