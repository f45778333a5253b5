package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/flagship-portal/internal/migrations"
)

func newMigrateCmd(e *env) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the state_slots schema",
	}
	cmd.PersistentFlags().StringVar(&path, "path", "./migrations", "directory with migration files")

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the given number of migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if steps <= 0 {
				return fmt.Errorf("--steps must be positive, got %d", steps)
			}
			db, err := e.openStorage(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := migrations.Rollback(db.DB, path, steps); err != nil {
				return err
			}
			fmt.Fprintf(e.out, "rolled back %d migration(s)\n", steps)
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				db, err := e.openStorage(cmd)
				if err != nil {
					return err
				}
				defer db.Close()

				if err := migrations.Run(db.DB, path); err != nil {
					return err
				}
				fmt.Fprintln(e.out, "migrations applied")
				return nil
			},
		},
		down,
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				db, err := e.openStorage(cmd)
				if err != nil {
					return err
				}
				defer db.Close()

				v, dirty, err := migrations.Version(db.DB, path)
				if err != nil {
					return err
				}
				fmt.Fprintf(e.out, "version %d (dirty: %t)\n", v, dirty)
				return nil
			},
		},
	)
	return cmd
}
