package cli

import (
	"github.com/spf13/cobra"

	"github.com/abelorian/lucid/internal/wire"
)

// DbTruncateCmd returns the db-truncate command
func DbTruncateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "db-truncate",
		Aliases: []string{"db:truncate"},
		Short:   "Truncate all tables in database",
		Long: `Truncate every table of a connection, except the migration
bookkeeping tables listed in database.exclude_tables.

In production the command asks for confirmation unless --force is given.
Without a terminal to ask on, it does nothing.

Examples:
  lucid db-truncate
  lucid db-truncate -c reporting
  LUCID_APP_ENVIRONMENT=production lucid db-truncate --force`,
		Args: cobra.NoArgs,
		RunE: runDbTruncate,
	}

	cmd.Flags().StringP("connection", "c", "", "Define a custom database connection")
	cmd.Flags().Bool("force", false, "Explicitly force command to run in production")

	return cmd
}

func runDbTruncate(cmd *cobra.Command, args []string) error {
	connection, _ := cmd.Flags().GetString("connection")
	force, _ := cmd.Flags().GetBool("force")

	adapter, err := wire.TruncateAdapterWithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return adapter.Truncate(cmd.Context(), connection, force)
}

// DbWipeCmd returns the db-wipe command
func DbWipeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "db-wipe",
		Aliases: []string{"db:wipe"},
		Short:   "Truncate all tables of every configured connection",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")

			adapter, err := wire.TruncateAdapterWithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return adapter.Wipe(cmd.Context(), force)
		},
	}

	cmd.Flags().Bool("force", false, "Explicitly force command to run in production")

	return cmd
}
