package cli

import (
	"github.com/spf13/cobra"

	"github.com/abelorian/lucid/internal/ports/primary"
	"github.com/abelorian/lucid/internal/wire"
)

// MakeModelCmd returns the make-model command
func MakeModelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "make-model <name>",
		Aliases: []string{"make:model"},
		Short:   "Make a new model",
		Long: `Generate a model file in the models directory.

The model file is written first. With --migration and --controller the
make-migration and make-controller generators then run as separate
processes, in that order. A failing generator stops the ones after it.

Examples:
  lucid make-model post
  lucid make-model BlogPost -m -c
  lucid make-model post --force`,
		Args: cobra.ExactArgs(1),
		RunE: runMakeModel,
	}

	cmd.Flags().BoolP("migration", "m", false, "Generate the migration for the model")
	cmd.Flags().BoolP("controller", "c", false, "Generate the controller for the model")
	cmd.Flags().Bool("force", false, "Overwrite an existing model file without asking")

	return cmd
}

func runMakeModel(cmd *cobra.Command, args []string) error {
	migration, _ := cmd.Flags().GetBool("migration")
	controller, _ := cmd.Flags().GetBool("controller")
	force, _ := cmd.Flags().GetBool("force")

	adapter, err := wire.ScaffoldAdapterWithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return adapter.MakeModel(cmd.Context(), primary.MakeModelRequest{
		Name:       args[0],
		Migration:  migration,
		Controller: controller,
		Force:      force,
	})
}

// MakeMigrationCmd returns the make-migration command
func MakeMigrationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "make-migration <name>",
		Aliases: []string{"make:migration"},
		Short:   "Make a new migration file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, _ := cmd.Flags().GetString("table")

			adapter, err := wire.ScaffoldAdapterWithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return adapter.MakeMigration(cmd.Context(), primary.MakeMigrationRequest{
				Name:  args[0],
				Table: table,
			})
		},
	}

	cmd.Flags().String("table", "", "Table name (defaults to the plural snake_case name)")

	return cmd
}

// MakeControllerCmd returns the make-controller command
func MakeControllerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "make-controller <name>",
		Aliases: []string{"make:controller"},
		Short:   "Make a new HTTP controller",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resource, _ := cmd.Flags().GetBool("resource")

			adapter, err := wire.ScaffoldAdapterWithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return adapter.MakeController(cmd.Context(), primary.MakeControllerRequest{
				Name:     args[0],
				Resource: resource,
			})
		},
	}

	cmd.Flags().BoolP("resource", "r", false, "Add resourceful methods to the controller")

	return cmd
}
