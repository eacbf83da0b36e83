package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopledger/shop_ledger_app/internal/dto"
	"github.com/spf13/cobra"
)

func newEntryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Create and inspect journal entries",
	}
	cmd.AddCommand(newEntryCreateCommand())
	cmd.AddCommand(newEntryShowCommand())
	return cmd
}

func newEntryCreateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a miscellaneous journal entry from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading %s: %w", file, err)
			}
			var req dto.CreateEntryRequest
			if err := json.Unmarshal(raw, &req); err != nil {
				return fmt.Errorf("parsing %s: %w", file, err)
			}

			return withApp(cmd, func(ctx context.Context, a *app) error {
				if req.ExerciseID == "" {
					exercise, err := a.services.Period.GetOrCreateOpenExercise(ctx, a.userID)
					if err != nil {
						return err
					}
					req.ExerciseID = exercise.ExerciseID
				}
				entry, err := a.services.Ledger.CreateEntry(ctx, req, a.userID)
				if err != nil {
					return err
				}
				return printJSON(entry)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with the entry to create (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newEntryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <entry-id>",
		Short: "Show an entry with its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app) error {
				entry, err := a.services.Ledger.GetEntry(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(entry)
			})
		},
	}
}
