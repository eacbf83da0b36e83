package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shop_ledger",
		Short: "Double-entry accounting engine for the shop",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("user", "", "acting user recorded in audit fields (defaults to DEFAULT_USER)")

	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newDailyCommand())
	rootCmd.AddCommand(newExerciseCommand())
	rootCmd.AddCommand(newEntryCommand())
	rootCmd.AddCommand(newPostCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newStatementsCommand())

	return rootCmd
}
