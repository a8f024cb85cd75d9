package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/database"
)

// MigrateCmd creates the migrate command and its up, down and status subcommands
func MigrateCmd(app *AppContext) *cobra.Command {
	var dir string

	executor := func() (*database.MigrationExecutor, error) {
		db, err := app.Database()
		if err != nil {
			return nil, err
		}
		path := dir
		if path == "" {
			path = app.Cfg.Database.MigrationsDir
		}
		return database.NewMigrationExecutor(db.DB, path), nil
	}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "Migrations directory (defaults to DB_MIGRATIONS_DIR)")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := executor()
			if err != nil {
				return err
			}
			applied, err := m.Up(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to apply migrations: %w", err)
			}
			if len(applied) == 0 {
				color.Green("Schema is up to date")
				return nil
			}
			for _, v := range applied {
				app.Logger.Info("Applied migration", zap.String("version", v))
			}
			color.Green("Applied %d migration(s)", len(applied))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := executor()
			if err != nil {
				return err
			}
			version, err := m.Rollback(app.Ctx)
			if errors.Is(err, database.ErrNoMigrationApplied) {
				color.Yellow("Nothing to roll back")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to roll back: %w", err)
			}
			color.Green("Rolled back %s", version)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := executor()
			if err != nil {
				return err
			}
			statuses, err := m.Status(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to read migration status: %w", err)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Version", "Title", "Status", "Applied At"})
			for _, s := range statuses {
				state, at := "pending", ""
				if s.Applied {
					state = "applied"
					if s.AppliedAt != nil {
						at = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				table.Append([]string{s.Version, s.Title, state, at})
			}
			table.Render()
			return nil
		},
	})

	return cmd
}
