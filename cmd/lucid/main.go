package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/abelorian/lucid/internal/cli"
	"github.com/abelorian/lucid/internal/config"
	"github.com/abelorian/lucid/internal/ui"
	"github.com/abelorian/lucid/internal/version"
	"github.com/abelorian/lucid/internal/wire"
)

func main() {
	var opts wire.Options

	rootCmd := &cobra.Command{
		Use:     "lucid",
		Short:   "Lucid - model scaffolding and database maintenance",
		Version: version.String(),
		Long: `lucid generates models, migrations and controllers for a project and
maintains its databases.

Configuration is read from lucid.yaml in the working directory and from
LUCID_* environment variables (LUCID_APP_ENVIRONMENT, LUCID_DATABASE_CONNECTION).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ui.ConfigureColor()
			wire.Configure(opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", os.Getenv(config.PathEnv), "Path to the config file (default ./lucid.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.Verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&opts.NonInteractive, "non-interactive", false, "Never prompt; prompts count as declined")

	// Generators
	rootCmd.AddCommand(cli.MakeModelCmd())
	rootCmd.AddCommand(cli.MakeMigrationCmd())
	rootCmd.AddCommand(cli.MakeControllerCmd())

	// Database
	rootCmd.AddCommand(cli.DbTruncateCmd())
	rootCmd.AddCommand(cli.DbWipeCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	wire.Shutdown()

	if err != nil {
		wire.Printer().Error("%v", err)
		os.Exit(1)
	}
}
