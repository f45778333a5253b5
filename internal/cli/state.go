package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/flagship-portal/internal/config"
	janitorservice "github.com/magabrotheeeer/flagship-portal/internal/services/janitor"
	"github.com/magabrotheeeer/flagship-portal/internal/storage/repository"
)

// openStorage подключается к postgres из конфигурации.
func (e *env) openStorage(cmd *cobra.Command) (*repository.Storage, error) {
	if e.cfg.StorageConnectionString == "" {
		return nil, fmt.Errorf("storage_connection_string is not configured")
	}
	return repository.New(cmd.Context(), e.cfg.StorageConnectionString)
}

func newStateCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Maintain the postgres state store",
		Long: `Maintain session state slots kept in postgres.

Redis expires slots by itself, so these commands apply to the postgres backend only.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			if e.cfg.State.Backend != config.StatePostgres {
				return fmt.Errorf("state backend is %q, these commands need %q", e.cfg.State.Backend, config.StatePostgres)
			}
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "purge",
			Short: "Delete expired state slots",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				db, err := e.openStorage(cmd)
				if err != nil {
					return err
				}
				defer db.Close()

				n := janitorservice.NewJanitorService(e.log, db).RunOnce(cmd.Context())
				fmt.Fprintf(e.out, "purged %d expired slots\n", n)
				return nil
			},
		},
		&cobra.Command{
			Use:   "sessions",
			Short: "Count sessions with live state",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				db, err := e.openStorage(cmd)
				if err != nil {
					return err
				}
				defer db.Close()

				n, err := db.CountSessions(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(e.out, "%d active sessions\n", n)
				return nil
			},
		},
	)
	return cmd
}
